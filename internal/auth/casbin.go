package auth

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/util"
	sqlxadapter "github.com/memwey/casbin-sqlx-adapter"
)

// NewEnforcer creates and configures a new Casbin enforcer. It sets up the
// database adapter, loads the model from the specified path, and loads all
// authorization policies from the database.
//
// Parameters:
//   - driverName: The name of the database driver (e.g., "sqlite").
//   - dsn: The Data Source Name for the database connection.
//   - modelPath: The file path to the Casbin model configuration (`.conf`).
func NewEnforcer(driverName, dsn, modelPath string) (*casbin.Enforcer, error) {
	// The adapter stores policies in our application's database, so route
	// rules survive restarts alongside the data they protect.
	opts := &sqlxadapter.AdapterOptions{
		DriverName:     driverName,
		DataSourceName: dsn,
		TableName:      "casbin_rule",
	}
	adapter := sqlxadapter.NewAdapterFromOptions(opts)

	enforcer, err := casbin.NewEnforcer(modelPath, adapter)
	if err != nil {
		return nil, err
	}

	// keyMatch2 allows wildcard and :param matching in route paths
	// (e.g. "/api/pages/:id"). The model references it by name.
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}

	return enforcer, nil
}
