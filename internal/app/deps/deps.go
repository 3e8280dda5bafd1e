package deps

import (
	"context"
	"remindchat/internal/config"
	"remindchat/internal/core/domain/chat"
	c "remindchat/internal/core/domain/common"
	"remindchat/internal/core/domain/conversation"
	"remindchat/internal/core/domain/friend"
	dl "remindchat/internal/core/domain/logging"
	drl "remindchat/internal/core/domain/rate_limiter"
	"remindchat/internal/core/domain/reminder"
	duow "remindchat/internal/core/domain/unit_of_work"
	"remindchat/internal/core/domain/user"
	dbfriend "remindchat/internal/db/friend"
	dbreminder "remindchat/internal/db/reminder"
	uow "remindchat/internal/db/unit_of_work"
	dbuser "remindchat/internal/db/user"
	conversationcontext "remindchat/internal/implementations/conversation_context"
	"remindchat/internal/implementations/events"
	"remindchat/internal/implementations/extractor"
	"remindchat/internal/implementations/logging"
	passwordhasher "remindchat/internal/implementations/password_hasher"
	ratelimiter "remindchat/internal/implementations/rate_limiter"
	"remindchat/internal/implementations/token"
	"remindchat/internal/implementations/tombstones"
	"remindchat/internal/implementations/whatsapp"
	"remindchat/internal/rabbitmq"
	firescheduler "remindchat/internal/rabbitmq/publishers/fire_scheduler"
	"sync"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

const EXTRACTOR_MAX_TOKENS = 1024

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	UnitOfWork         duow.UnitOfWork
	UserRepository     user.UserRepository
	FriendRepository   friend.FriendRepository
	ReminderRepository reminder.ReminderRepository

	RateLimiter drl.RateLimiter

	PasswordHasher       user.PasswordHasher
	AccessTokenIssuer    user.AccessTokenIssuer
	AccessTokenValidator user.AccessTokenValidator

	ContextStore   conversation.ContextStore
	Extractor      chat.Extractor
	ReplyPolisher  chat.ReplyPolisher
	MessageSender  chat.MessageSender
	FireTombstones reminder.Tombstones
	EventPublisher reminder.EventPublisher

	ReminderScheduler reminder.Scheduler
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.FriendRepository = dbfriend.NewPgxFriendRepository(deps.DB)
	deps.ReminderRepository = dbreminder.NewPgxReminderRepository(deps.DB)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)

	jwt := token.NewJWT(deps.Config.Secret, deps.Config.AccessTokenTTL, deps.Now)
	deps.AccessTokenIssuer = jwt
	deps.AccessTokenValidator = jwt

	deps.ContextStore = deps.initContextStore()
	deps.Extractor, deps.ReplyPolisher = deps.initExtractor()
	deps.MessageSender = deps.initMessageSender()
	deps.FireTombstones = tombstones.NewRedis(deps.Redis)
	deps.EventPublisher = events.NewSSEPublisher(deps.Logger, deps.SseServer)

	closeReminderScheduler := deps.initRabbitmqReminderScheduler()

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closeReminderScheduler,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.Debug)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

// Topology is shared by the publisher and the fire consumer.
func (deps *Deps) Topology() rabbitmq.Topology {
	return rabbitmq.Topology{
		Exchange:   deps.Config.RabbitmqDelayedExchange,
		Queue:      deps.Config.RabbitmqReminderFireQueue,
		RoutingKey: deps.Config.RabbitmqReminderFireQueue,
	}
}

func (deps *Deps) initRabbitmqReminderScheduler() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	topology := deps.Topology()
	if err := topology.Declare(rabbitmqChannel); err != nil {
		deps.Logger.Error(context.Background(), "Could not declare RabbitMQ topology.", dl.Entry("err", err))
		panic(err)
	}

	deps.ReminderScheduler = firescheduler.NewRabbitMQ(
		deps.Logger,
		rabbitmqChannel,
		deps.FireTombstones,
		topology.Exchange,
		topology.RoutingKey,
		deps.Now,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down reminder scheduler.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Reminder scheduler shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Deps) initContextStore() conversation.ContextStore {
	if deps.Config.InMemoryConversationContext {
		deps.Logger.Info(context.Background(), "Conversation context is kept in memory.")
		return conversationcontext.NewMemory(deps.Config.ConversationContextTTL, deps.Now)
	}
	return conversationcontext.NewRedis(deps.Redis, deps.Config.ConversationContextTTL, deps.Now)
}

func (deps *Deps) initExtractor() (chat.Extractor, chat.ReplyPolisher) {
	var completer extractor.Completer
	switch deps.Config.ExtractorProvider {
	case config.ExtractorOpenAI:
		completer = extractor.NewOpenAI(extractor.OpenAIOptions{
			APIKey:    deps.Config.OpenAIAPIKey,
			Model:     deps.Config.OpenAIModel,
			MaxTokens: EXTRACTOR_MAX_TOKENS,
		})
	case config.ExtractorAnthropic:
		completer = extractor.NewAnthropic(extractor.AnthropicOptions{
			APIKey:    deps.Config.AnthropicAPIKey,
			Model:     deps.Config.AnthropicModel,
			MaxTokens: EXTRACTOR_MAX_TOKENS,
		})
	default:
		deps.Logger.Info(context.Background(), "Language model is disabled, using keyword extractor.")
		return extractor.NewKeyword(), chat.NopPolisher{}
	}

	deps.Logger.Info(
		context.Background(),
		"Language model extractor is enabled.",
		dl.Entry("provider", deps.Config.ExtractorProvider),
		dl.Entry("polish", deps.Config.PolishReplies),
	)
	var polisher chat.ReplyPolisher = chat.NopPolisher{}
	if deps.Config.PolishReplies {
		polisher = extractor.NewLLMPolisher(completer)
	}
	return extractor.NewLLMExtractor(deps.Logger, completer), polisher
}

func (deps *Deps) initMessageSender() chat.MessageSender {
	if deps.Config.WhatsappAccountSID == "" {
		deps.Logger.Warning(context.Background(), "Twilio account is not configured, messages are only logged.")
		return whatsapp.NewLogSender(deps.Logger)
	}
	return whatsapp.NewTwilioSender(
		deps.Config.WhatsappBaseURL,
		whatsapp.Credentials{
			AccountSID: deps.Config.WhatsappAccountSID,
			AuthToken:  deps.Config.WhatsappAuthToken,
			From:       c.NewPhoneHandle(deps.Config.WhatsappFrom),
		},
		deps.Config.WhatsappRequestTimeout,
	)
}
