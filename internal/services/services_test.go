package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/buildvance/estimator-backend/internal/logger"
	"github.com/buildvance/estimator-backend/internal/repos"
	"github.com/buildvance/estimator-backend/internal/types"
)

// testEnv wires the full service stack against an in-memory sqlite database
// so service behavior is exercised end to end through the real repos.
type testEnv struct {
	db        *gorm.DB
	contacts  ContactService
	users     UserService
	workItems WorkItemService
	projects  ProjectService
	estimates EstimateService
	quotes    QuoteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&types.Contact{},
		&types.User{},
		&types.WorkItem{},
		&types.Project{},
		&types.Estimate{},
		&types.EstimateGroup{},
		&types.EstimateLine{},
		&types.Quote{},
	))

	log := logger.NewNop()
	contactRepo := repos.NewContactRepo(db, log)
	userRepo := repos.NewUserRepo(db, log)
	workItemRepo := repos.NewWorkItemRepo(db, log)
	projectRepo := repos.NewProjectRepo(db, log)
	estimateRepo := repos.NewEstimateRepo(db, log)
	quoteRepo := repos.NewQuoteRepo(db, log)

	return &testEnv{
		db:        db,
		contacts:  NewContactService(db, log, contactRepo),
		users:     NewUserService(db, log, userRepo, contactRepo),
		workItems: NewWorkItemService(db, log, workItemRepo, userRepo),
		projects:  NewProjectService(db, log, projectRepo, userRepo),
		estimates: NewEstimateService(db, log, estimateRepo, projectRepo, workItemRepo, quoteRepo),
		quotes:    NewQuoteService(db, log, quoteRepo, workItemRepo, userRepo),
	}
}

func testContact(tag string) *types.Contact {
	return &types.Contact{
		FirstName: "Test",
		LastName:  tag,
		Email:     fmt.Sprintf("%s@buildvance.dev", tag),
	}
}

func (env *testEnv) mustCreateUser(t *testing.T, tag string, labels ...types.ContactLabel) *types.User {
	t.Helper()
	user, err := env.users.NewRegisteredUser(context.Background(), tag, fmt.Sprintf("%s@users.buildvance.dev", tag), testContact(tag), labels...)
	require.NoError(t, err)
	return user
}

func (env *testEnv) mustCreateWorkItem(t *testing.T, userID uuid.UUID, code string) *types.WorkItem {
	t.Helper()
	item, err := env.workItems.Create(context.Background(), CreateWorkItemInput{
		UserID: userID,
		Code:   code,
		Name:   "Work item " + code,
	})
	require.NoError(t, err)
	return item
}

func (env *testEnv) mustCreateProject(t *testing.T, builderID, ownerID uuid.UUID) *types.Project {
	t.Helper()
	project, err := env.projects.Create(context.Background(), builderID, ownerID, types.Address{City: "Springfield"})
	require.NoError(t, err)
	return project
}

func (env *testEnv) mustCreateQuote(t *testing.T, workItemID, creatorID uuid.UUID, price float64, domain string) *types.Quote {
	t.Helper()
	quote, err := env.quotes.Create(context.Background(), CreateQuoteInput{
		WorkItemID:  workItemID,
		CreatedByID: creatorID,
		SupplierID:  creatorID,
		Unit:        "SQUARE_METER",
		UnitPrice:   decimal.NewFromFloat(price),
		Currency:    "USD",
		Domain:      domain,
	})
	require.NoError(t, err)
	return quote
}

func (env *testEnv) countRows(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, env.db.Model(model).Where(query, args...).Count(&count).Error)
	return count
}
