package cmd

import (
	"log/slog"
	"time"

	httpin "settlement/internal/adapters/in/http"
	"settlement/internal/adapters/out/notifier"
	"settlement/internal/adapters/out/postgres"
	"settlement/internal/adapters/out/postgres/categoryrepo"
	"settlement/internal/adapters/out/postgres/orderrepo"
	"settlement/internal/adapters/out/postgres/settingrepo"
	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/ports"
	"settlement/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into application handlers. Each Create*
// method hands out a ready handler; the shared pieces (database handle,
// unit of work factory, providers) live here.
type CompositionRoot struct {
	config         Config
	gormDB         *gorm.DB
	uowFactory     postgres.GormUnitOfWorkFactory
	orderProvider  ports.OrderProvider
	catalog        ports.CategoryCatalog
	configProvider ports.SettlementConfigProvider
	sink           ports.NotificationSink
	logger         *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:         config,
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		orderProvider:  orderrepo.NewGormOrderProvider(gormDB),
		catalog:        categoryrepo.NewGormCategoryCatalog(gormDB),
		configProvider: settingrepo.NewGormSettingProvider(gormDB, logger),
		sink:           notifier.NewLogNotificationSink(logger),
		logger:         logger,
	}
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory(), c.orderProvider)
}

func (c *CompositionRoot) CreateMarkDeliveryInProgressCommandHandler() commands.MarkDeliveryInProgressCommandHandler {
	return commands.NewMarkDeliveryInProgressCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateMarkDeliveryCompletedCommandHandler() commands.MarkDeliveryCompletedCommandHandler {
	return commands.NewMarkDeliveryCompletedCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateDenyDeliveryCommandHandler() commands.DenyDeliveryCommandHandler {
	return commands.NewDenyDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateRecordNonDeliveryCommandHandler() commands.RecordNonDeliveryCommandHandler {
	return commands.NewRecordNonDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateSetDeliveryItemsCommandHandler() commands.SetDeliveryItemsCommandHandler {
	return commands.NewSetDeliveryItemsCommandHandler(c.deliveryUoWFactory(), c.catalog)
}

func (c *CompositionRoot) CreateCenterConfirmCommandHandler() commands.CenterConfirmCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCenterConfirmCommandHandler(f, c.configProvider, c.orderProvider)
}

func (c *CompositionRoot) CreateSubmitSurveyCommandHandler() commands.SubmitSurveyCommandHandler {
	var f commands.SurveyUoWFactory = FuncSurveyUoWFactory(func() commands.SurveyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitSurveyCommandHandler(f)
}

func (c *CompositionRoot) CreateSendDeliveryRemindersCommandHandler() commands.SendDeliveryRemindersCommandHandler {
	return commands.NewSendDeliveryRemindersCommandHandler(c.deliveryUoWFactory(), c.sink, c.logger)
}

func (c *CompositionRoot) CreateGetOutstandingShortfallsQueryHandler() queries.GetOutstandingShortfallsQueryHandler {
	return queries.NewGetOutstandingShortfallsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWalletStatementQueryHandler() queries.GetWalletStatementQueryHandler {
	return queries.NewGetWalletStatementQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the JSON API server over the full handler set.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateDeliveryCommandHandler(),
		c.CreateMarkDeliveryInProgressCommandHandler(),
		c.CreateMarkDeliveryCompletedCommandHandler(),
		c.CreateConfirmDeliveryCommandHandler(),
		c.CreateDenyDeliveryCommandHandler(),
		c.CreateCancelDeliveryCommandHandler(),
		c.CreateRecordNonDeliveryCommandHandler(),
		c.CreateSetDeliveryItemsCommandHandler(),
		c.CreateCenterConfirmCommandHandler(),
		c.CreateSubmitSurveyCommandHandler(),
		c.CreateGetOutstandingShortfallsQueryHandler(),
		c.CreateGetWalletStatementQueryHandler(),
	)
}

// CreateJobManager assembles the background jobs. The reminder window comes
// from configuration as a Go duration string.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	window, err := time.ParseDuration(c.config.ReminderWindow)
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(
		c.CreateSendDeliveryRemindersCommandHandler(),
		c.config.ReminderSchedule,
		window,
		c.logger,
	), nil
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncSurveyUoWFactory func() commands.SurveyUoW

func (f FuncSurveyUoWFactory) Create() commands.SurveyUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}
