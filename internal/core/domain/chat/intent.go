package chat

type Intent struct {
	v string
}

func (i Intent) String() string {
	return i.v
}

var (
	IntentUnknown           = Intent{v: "unknown"}
	IntentGreeting          = Intent{v: "greeting"}
	IntentChitchat          = Intent{v: "chitchat"}
	IntentNeedTime          = Intent{v: "need_time"}
	IntentNeedContent       = Intent{v: "need_content"}
	IntentPotentialReminder = Intent{v: "potential_reminder"}
	IntentCreate            = Intent{v: "create"}
	IntentList              = Intent{v: "list"}
	IntentStopNumber        = Intent{v: "stop_number"}
)

// ParseIntent never fails; anything unrecognized is IntentUnknown.
func ParseIntent(value string) Intent {
	switch value {
	case "greeting":
		return IntentGreeting
	case "chitchat":
		return IntentChitchat
	case "need_time":
		return IntentNeedTime
	case "need_content":
		return IntentNeedContent
	case "potential_reminder":
		return IntentPotentialReminder
	case "create":
		return IntentCreate
	case "list":
		return IntentList
	case "stop_number":
		return IntentStopNumber
	default:
		return IntentUnknown
	}
}
