package sqlite

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

type schemaObject struct {
	kind string
	name string
	sql  string
}

// dump writes a logical SQL dump: table DDL, data as INSERT statements,
// then indexes and triggers, wrapped in one transaction. Foreign keys are
// switched off for the restore since tables are emitted by name.
func dump(ctx context.Context, q Querier, w io.Writer) error {
	objects, err := schemaObjects(ctx, q)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "PRAGMA foreign_keys=OFF;")
	fmt.Fprintln(bw, "BEGIN TRANSACTION;")

	for _, obj := range objects {
		if obj.kind != "table" {
			continue
		}
		fmt.Fprintf(bw, "%s;\n", obj.sql)
		if err := dumpRows(ctx, q, bw, obj.name); err != nil {
			return err
		}
	}
	for _, obj := range objects {
		if obj.kind == "table" {
			continue
		}
		fmt.Fprintf(bw, "%s;\n", obj.sql)
	}

	fmt.Fprintln(bw, "COMMIT;")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write dump: %w", err)
	}
	return nil
}

func schemaObjects(ctx context.Context, q Querier) ([]schemaObject, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT type, name, sql FROM sqlite_master
		WHERE sql IS NOT NULL AND name NOT LIKE 'sqlite_%'
		ORDER BY CASE type WHEN 'table' THEN 0 WHEN 'index' THEN 1 ELSE 2 END, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	defer rows.Close()

	var objects []schemaObject
	for rows.Next() {
		var obj schemaObject
		if err := rows.Scan(&obj.kind, &obj.name, &obj.sql); err != nil {
			return nil, fmt.Errorf("failed to scan schema object: %w", err)
		}
		objects = append(objects, obj)
	}
	return objects, rows.Err()
}

func tableColumns(ctx context.Context, q Querier, table string) ([]string, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

func dumpRows(ctx context.Context, q Querier, w io.Writer, table string) error {
	columns, err := tableColumns(ctx, q, table)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		return nil
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = "quote(" + quoteIdent(c) + ")"
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), quoteIdent(table))

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to read rows of %s: %w", table, err)
	}
	defer rows.Close()

	values := make([]string, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("failed to scan row of %s: %w", table, err)
		}
		if _, err := fmt.Fprintf(w, "INSERT INTO %s VALUES(%s);\n", quoteIdent(table), strings.Join(values, ",")); err != nil {
			return fmt.Errorf("failed to write row of %s: %w", table, err)
		}
	}
	return rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
