package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/buildvance/estimator-backend/internal/logger"
	"github.com/buildvance/estimator-backend/internal/types"
	"github.com/buildvance/estimator-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "estimator", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	theDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresService{db: theDB, log: serviceLog}, nil
}

// AutoMigrateAll migrates every table and then installs the foreign keys by
// hand. The estimate aggregate cascades downward in the schema as a
// backstop; the services still delete orphans explicitly so the behavior
// does not depend on the storage engine.
func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.Contact{},
		&types.User{},
		&types.WorkItem{},
		&types.Project{},
		&types.Estimate{},
		&types.EstimateGroup{},
		&types.EstimateLine{},
		&types.Quote{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		ddl  string
	}{
		{"fk_app_user_contact_id", `ALTER TABLE "app_user" ADD CONSTRAINT "fk_app_user_contact_id" FOREIGN KEY ("contact_id") REFERENCES "contact"("id")`},
		{"fk_work_item_user_id", `ALTER TABLE "work_item" ADD CONSTRAINT "fk_work_item_user_id" FOREIGN KEY ("user_id") REFERENCES "app_user"("id")`},
		{"fk_project_builder_id", `ALTER TABLE "project" ADD CONSTRAINT "fk_project_builder_id" FOREIGN KEY ("builder_id") REFERENCES "app_user"("id")`},
		{"fk_project_owner_id", `ALTER TABLE "project" ADD CONSTRAINT "fk_project_owner_id" FOREIGN KEY ("owner_id") REFERENCES "app_user"("id")`},
		{"fk_estimate_project_id", `ALTER TABLE "estimate" ADD CONSTRAINT "fk_estimate_project_id" FOREIGN KEY ("project_id") REFERENCES "project"("id")`},
		{"fk_estimate_group_estimate_id", `ALTER TABLE "estimate_group" ADD CONSTRAINT "fk_estimate_group_estimate_id" FOREIGN KEY ("estimate_id") REFERENCES "estimate"("id") ON DELETE CASCADE`},
		{"fk_estimate_line_estimate_id", `ALTER TABLE "estimate_line" ADD CONSTRAINT "fk_estimate_line_estimate_id" FOREIGN KEY ("estimate_id") REFERENCES "estimate"("id") ON DELETE CASCADE`},
		{"fk_estimate_line_group_id", `ALTER TABLE "estimate_line" ADD CONSTRAINT "fk_estimate_line_group_id" FOREIGN KEY ("group_id") REFERENCES "estimate_group"("id") ON DELETE CASCADE`},
		{"fk_estimate_line_work_item_id", `ALTER TABLE "estimate_line" ADD CONSTRAINT "fk_estimate_line_work_item_id" FOREIGN KEY ("work_item_id") REFERENCES "work_item"("id")`},
		{"fk_quote_work_item_id", `ALTER TABLE "quote" ADD CONSTRAINT "fk_quote_work_item_id" FOREIGN KEY ("work_item_id") REFERENCES "work_item"("id")`},
		{"fk_quote_created_by_id", `ALTER TABLE "quote" ADD CONSTRAINT "fk_quote_created_by_id" FOREIGN KEY ("created_by_id") REFERENCES "app_user"("id")`},
		{"fk_quote_supplier_id", `ALTER TABLE "quote" ADD CONSTRAINT "fk_quote_supplier_id" FOREIGN KEY ("supplier_id") REFERENCES "app_user"("id")`},
	}
	for _, c := range constraints {
		var count int64
		if err := s.db.Raw(`SELECT count(*) FROM information_schema.table_constraints WHERE constraint_name = ?`, c.name).Scan(&count).Error; err != nil {
			return fmt.Errorf("checking constraint %s: %w", c.name, err)
		}
		if count > 0 {
			continue
		}
		if err := s.db.Exec(c.ddl).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", c.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
