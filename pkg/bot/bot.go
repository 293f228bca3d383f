package bot

import (
	"time"

	tele "gopkg.in/telebot.v3"

	"autorent/config"
	"autorent/pkg/logger"
	"autorent/service"
)

// Session tracks where a chat is inside a guided input flow.
type Session struct {
	State    string
	Vehicle  service.VehicleInput
	Customer service.CustomerInput
	Start    string
}

type Bot struct {
	Bot      *tele.Bot
	Log      logger.ILogger
	Cfg      *config.Config
	Svc      service.IServiceManager
	Sessions map[int64]*Session
}

const (
	StateIdle = "idle"

	StateVehiclePlate = "awaiting_vehicle_plate"
	StateVehicleMake  = "awaiting_vehicle_make"
	StateVehicleModel = "awaiting_vehicle_model"
	StateVehicleYear  = "awaiting_vehicle_year"
	StateVehicleColor = "awaiting_vehicle_color"
	StateVehicleRate  = "awaiting_vehicle_rate"

	StateCustomerID    = "awaiting_customer_id"
	StateCustomerName  = "awaiting_customer_name"
	StateCustomerPhone = "awaiting_customer_phone"
	StateCustomerEmail = "awaiting_customer_email"

	StateRentPlate     = "awaiting_rent_plate"
	StateRentCustomer  = "awaiting_rent_customer"
	StateReturnPlate   = "awaiting_return_plate"
	StateMaintSend     = "awaiting_maintenance_plate"
	StateMaintReturn   = "awaiting_maintenance_return_plate"
	StateHistoryID     = "awaiting_history_customer"
	StateRevenueStart  = "awaiting_revenue_start"
	StateRevenueEnd    = "awaiting_revenue_end"
	StateRemoveVehicle = "awaiting_remove_plate"
	StateRemoveCust    = "awaiting_remove_customer"
)

// Main menu buttons.
const (
	btnAddVehicle    = "🚙 New vehicle"
	btnAddCustomer   = "👤 New customer"
	btnRent          = "🔑 Rent"
	btnReturn        = "↩️ Return"
	btnMaintSend     = "🛠 To maintenance"
	btnMaintReturn   = "✅ From maintenance"
	btnFleet         = "📋 Fleet"
	btnCustomers     = "👥 Customers"
	btnHistory       = "📖 History"
	btnRevenue       = "💰 Revenue"
	btnRemoveVehicle = "🗑 Remove vehicle"
	btnRemoveCust    = "🗑 Remove customer"
)

func New(cfg *config.Config, svc service.IServiceManager, log logger.ILogger) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}
	bot := &Bot{
		Bot:      b,
		Log:      log,
		Cfg:      cfg,
		Svc:      svc,
		Sessions: make(map[int64]*Session),
	}
	bot.registerHandlers()
	return bot, nil
}

func (b *Bot) Start() {
	b.Log.Info("rental desk bot started")
	b.Bot.Start()
}

func (b *Bot) registerHandlers() {
	b.Bot.Handle("/start", b.guard(b.handleStart))
	b.Bot.Handle("/cancel", b.guard(b.handleCancel))
	b.Bot.Handle(tele.OnText, b.guard(b.handleText))
}

// guard restricts the bot to the configured operator.
func (b *Bot) guard(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if b.Cfg.AdminID != 0 && c.Sender().ID != b.Cfg.AdminID {
			return c.Send("🚫 This desk is restricted to the operator.")
		}
		return next(c)
	}
}

func (b *Bot) session(id int64) *Session {
	s, ok := b.Sessions[id]
	if !ok {
		s = &Session{State: StateIdle}
		b.Sessions[id] = s
	}
	return s
}

func (b *Bot) reset(id int64) {
	b.Sessions[id] = &Session{State: StateIdle}
}

func (b *Bot) menu() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{ResizeKeyboard: true}
	m.Reply(
		m.Row(m.Text(btnRent), m.Text(btnReturn)),
		m.Row(m.Text(btnAddVehicle), m.Text(btnAddCustomer)),
		m.Row(m.Text(btnMaintSend), m.Text(btnMaintReturn)),
		m.Row(m.Text(btnFleet), m.Text(btnCustomers)),
		m.Row(m.Text(btnHistory), m.Text(btnRevenue)),
		m.Row(m.Text(btnRemoveVehicle), m.Text(btnRemoveCust)),
	)
	return m
}

func (b *Bot) handleStart(c tele.Context) error {
	b.reset(c.Sender().ID)
	return c.Send("🚗 Rental desk ready.", b.menu())
}

func (b *Bot) handleCancel(c tele.Context) error {
	b.reset(c.Sender().ID)
	return c.Send("Operation cancelled.", b.menu())
}
