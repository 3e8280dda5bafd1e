package reminder

import "errors"

type OrderBy struct {
	v string
}

func (o OrderBy) String() string {
	return o.v
}

var (
	OrderByNotSet        OrderBy = OrderBy{}
	OrderByDueAtAsc      OrderBy = OrderBy{v: "due_at_asc"}
	OrderByDueAtDesc     OrderBy = OrderBy{v: "due_at_desc"}
	OrderByCreatedAtDesc OrderBy = OrderBy{v: "created_at_desc"}
)

var ErrParseOrderBy = errors.New("invalid order")

func ParseOrderBy(value string) (OrderBy, error) {
	switch value {
	case "due_at_asc":
		return OrderByDueAtAsc, nil
	case "due_at_desc":
		return OrderByDueAtDesc, nil
	case "created_at_desc":
		return OrderByCreatedAtDesc, nil
	default:
		return OrderByNotSet, ErrParseOrderBy
	}
}
