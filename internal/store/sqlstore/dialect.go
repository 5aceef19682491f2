package sqlstore

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDriver = errors.New("unknown store driver")

type dialect struct {
	driver    string
	createDDL string
	// postgres has no LastInsertId; ids come back via RETURNING.
	returning bool
	// sqlite allows only one writer; a single connection also keeps
	// ":memory:" databases from splitting across the pool.
	singleConn bool
	dollarArgs bool
}

var dialects = map[string]dialect{
	"sqlite": {
		driver: "sqlite",
		createDDL: `CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    completed BOOLEAN NOT NULL DEFAULT 0
)`,
		singleConn: true,
	},
	"postgres": {
		driver: "postgres",
		createDDL: `CREATE TABLE IF NOT EXISTS tasks (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    completed BOOLEAN NOT NULL DEFAULT FALSE
)`,
		returning:  true,
		dollarArgs: true,
	},
	"mysql": {
		driver: "mysql",
		createDDL: `CREATE TABLE IF NOT EXISTS tasks (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    title VARCHAR(255) NOT NULL DEFAULT '',
    description TEXT NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT FALSE
)`,
	},
}

func lookupDialect(name string) (dialect, error) {
	d, ok := dialects[strings.ToLower(name)]
	if !ok {
		return dialect{}, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}
	return d, nil
}

// rebind rewrites ? placeholders to $1, $2, ... for postgres.
func (d dialect) rebind(query string) string {
	if !d.dollarArgs {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
