package migration

import (
	agentdomain "github.com/smallbiznis/lodgera/internal/agent/domain"
	commissiondomain "github.com/smallbiznis/lodgera/internal/commission/domain"
	"github.com/smallbiznis/lodgera/internal/config"
	customerdomain "github.com/smallbiznis/lodgera/internal/customer/domain"
	ledgerdomain "github.com/smallbiznis/lodgera/internal/ledger/domain"
	reservationdomain "github.com/smallbiznis/lodgera/internal/reservation/domain"
	resourcedomain "github.com/smallbiznis/lodgera/internal/resource/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if !cfg.RunMigrations {
			return nil
		}

		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// Non-postgres deployments (sqlite, mysql) fall back to AutoMigrate.
		return AutoMigrate(conn)
	}),
)

// AutoMigrate creates the schema from the gorm models. Unique indexes carried
// on the model tags are the idempotency backstop for commissions and ledger
// entries, so they must exist in every environment, including tests.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&resourcedomain.Resource{},
		&customerdomain.Customer{},
		&agentdomain.Agent{},
		&reservationdomain.Reservation{},
		&reservationdomain.ReservationItem{},
		&commissiondomain.Commission{},
		&ledgerdomain.Entry{},
	)
}
