package database

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/pkg/errors"

	// SQL drivers

	_ "github.com/go-sql-driver/mysql"  // MariaDB & MySQL
	_ "github.com/lib/pq"               // Postgres
	_ "github.com/microsoft/go-mssqldb" // SQL Server
	_ "github.com/nakagami/firebirdsql" // Firebird
	_ "github.com/sijms/go-ora"         // Oracle
	_ "modernc.org/sqlite"              // SQLite
)

// List of SQL drivers for when we want to import more: https://zchee.github.io/golang-wiki/SQLDrivers/

var (
	drivers = map[string]string{"Firebird SQL": "firebirdsql", "MariaDB": "mysql", "MySQL": "mysql",
		"Oracle": "oracle", "Postgres": "postgres", "SQLite": "sqlite", "SQL Server": "sqlserver"}
)

// Accepts either the friendly name of a driver or the name it's registered under.
func ResolveDriver(name string) (string, error) {
	if driver, ok := drivers[name]; ok {
		return driver, nil
	}
	for _, driver := range drivers {
		if driver == name {
			return driver, nil
		}
	}
	return "", errors.Errorf("database: unknown driver %q\n%s", name, GetDriverOptions())
}

func GetdB(driver, dsn string) (*sql.DB, error) {
	driverName, err := ResolveDriver(driver)
	if err != nil {
		return nil, err
	}
	sqlObj, connectionError := sql.Open(driverName, dsn)
	if connectionError != nil {
		return nil, errors.Wrapf(connectionError, "database: opening %s", driverName)
	}
	if driverName == "sqlite" { // Every connection to an in-memory database would be a different database.
		sqlObj.SetMaxOpenConns(1)
	}
	if err := sqlObj.Ping(); err != nil {
		sqlObj.Close()
		return nil, errors.Wrapf(err, "database: connecting to %s", driverName)
	}
	return sqlObj, nil
}

func GetDriverOptions() string {
	result := "The following SQL drivers are available: \n\n"
	for _, v := range GetSortedDrivers() {
		result = result + fmt.Sprintf("  %v (%v)\n", v, drivers[v])
	}
	return result
}

func GetSortedDrivers() []string {
	dr := []string{}
	for k := range drivers {
		dr = append(dr, k)
	}
	sort.Strings(dr)
	return dr
}

// The drivers don't agree about how to write query parameters.
func placeholder(driverName string, n int) string {
	switch driverName {
	case "postgres":
		return fmt.Sprintf("$%d", n)
	case "oracle":
		return fmt.Sprintf(":%d", n)
	case "sqlserver":
		return fmt.Sprintf("@p%d", n)
	}
	return "?"
}
