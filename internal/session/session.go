// Package session implements the interactive menu loop of flintdb. All
// input validation is recovered at the point of entry by re-prompting for
// the single offending value; structural errors abort the current
// operation and return to the menu.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"flintdb/internal/db"
	"flintdb/internal/storage"
	"flintdb/internal/types"
)

// Session drives one interactive flintdb session over a reader/writer
// pair.
type Session struct {
	in      *bufio.Reader
	out     io.Writer
	manager *db.Manager
}

// New creates a session bound to the given database manager and streams.
func New(manager *db.Manager, in io.Reader, out io.Writer) *Session {
	return &Session{
		in:      bufio.NewReader(in),
		out:     out,
		manager: manager,
	}
}

// Run executes the top-level menu loop until the user exits or input
// ends.
func (s *Session) Run() error {
	fmt.Fprintln(s.out, "FlintDB flat-file table store")
	fmt.Fprintln(s.out, "Type the number of an option and press enter")

	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "1) Create database")
		fmt.Fprintln(s.out, "2) List databases")
		fmt.Fprintln(s.out, "3) Drop database")
		fmt.Fprintln(s.out, "4) Connect to database")
		fmt.Fprintln(s.out, "5) Exit")

		choice, err := s.prompt("> ")
		if err != nil {
			return s.finish(err)
		}

		switch choice {
		case "1":
			err = s.createDatabase()
		case "2":
			err = s.listDatabases()
		case "3":
			err = s.dropDatabase()
		case "4":
			err = s.connectDatabase()
		case "5":
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "Unknown option")
		}
		if err != nil {
			return s.finish(err)
		}
	}
}

// finish turns end-of-input into a clean exit.
func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out, "Goodbye!")
		return nil
	}
	return err
}

func (s *Session) prompt(msg string) (string, error) {
	fmt.Fprint(s.out, msg)
	line, err := s.in.ReadString('\n')
	if err != nil && (line == "" || err != io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptIdentifier re-prompts until the input matches the identifier
// pattern.
func (s *Session) promptIdentifier(msg string) (string, error) {
	for {
		name, err := s.prompt(msg)
		if err != nil {
			return "", err
		}
		if types.ValidIdentifier(name) {
			return name, nil
		}
		fmt.Fprintln(s.out, "Names must start with a letter and contain only letters, digits and underscores")
	}
}

// promptCount re-prompts until the input is a positive integer.
func (s *Session) promptCount(msg string) (int, error) {
	for {
		raw, err := s.prompt(msg)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(raw)
		if convErr == nil && n > 0 {
			return n, nil
		}
		fmt.Fprintln(s.out, "Enter a positive number")
	}
}

func (s *Session) report(err error) {
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintln(s.out, "No matching row")
		return
	}
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

func (s *Session) createDatabase() error {
	name, err := s.promptIdentifier("Database name: ")
	if err != nil {
		return err
	}
	if err := s.manager.Create(name); err != nil {
		s.report(err)
		return nil
	}
	fmt.Fprintf(s.out, "Database %s created\n", name)
	return nil
}

func (s *Session) listDatabases() error {
	names, err := s.manager.List()
	if err != nil {
		s.report(err)
		return nil
	}
	if len(names) == 0 {
		fmt.Fprintln(s.out, "No databases")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(s.out, name)
	}
	return nil
}

func (s *Session) dropDatabase() error {
	name, err := s.promptIdentifier("Database name: ")
	if err != nil {
		return err
	}
	if err := s.manager.Drop(name); err != nil {
		s.report(err)
		return nil
	}
	fmt.Fprintf(s.out, "Database %s dropped\n", name)
	return nil
}

func (s *Session) connectDatabase() error {
	name, err := s.promptIdentifier("Database name: ")
	if err != nil {
		return err
	}
	store, err := s.manager.Connect(name)
	if err != nil {
		s.report(err)
		return nil
	}
	return s.tableMenu(name, store)
}

func (s *Session) tableMenu(database string, store *storage.Store) error {
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintf(s.out, "Database %s\n", database)
		fmt.Fprintln(s.out, "1) Create table")
		fmt.Fprintln(s.out, "2) List tables")
		fmt.Fprintln(s.out, "3) Insert record")
		fmt.Fprintln(s.out, "4) Show all records")
		fmt.Fprintln(s.out, "5) Find record by key")
		fmt.Fprintln(s.out, "6) Show column")
		fmt.Fprintln(s.out, "7) Update field")
		fmt.Fprintln(s.out, "8) Delete record by key")
		fmt.Fprintln(s.out, "9) Delete all records")
		fmt.Fprintln(s.out, "10) Delete column")
		fmt.Fprintln(s.out, "11) Export table to Parquet")
		fmt.Fprintln(s.out, "12) Drop table")
		fmt.Fprintln(s.out, "13) Disconnect")

		choice, err := s.prompt("> ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.createTable(store)
		case "2":
			err = s.listTables(store)
		case "3":
			err = s.insertRecord(store)
		case "4":
			err = s.showAllRecords(store)
		case "5":
			err = s.findRecord(store)
		case "6":
			err = s.showColumn(store)
		case "7":
			err = s.updateField(store)
		case "8":
			err = s.deleteRecord(store)
		case "9":
			err = s.deleteAllRecords(store)
		case "10":
			err = s.deleteColumn(store)
		case "11":
			err = s.exportTable(store)
		case "12":
			err = s.dropTable(store)
		case "13":
			return nil
		default:
			fmt.Fprintln(s.out, "Unknown option")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) createTable(store *storage.Store) error {
	var table string
	for {
		name, err := s.promptIdentifier("Table name: ")
		if err != nil {
			return err
		}
		if _, loadErr := store.Schemas.Load(name); loadErr == nil {
			fmt.Fprintf(s.out, "Table %s already exists\n", name)
			continue
		}
		table = name
		break
	}

	count, err := s.promptCount("Number of columns: ")
	if err != nil {
		return err
	}

	columns := make([]types.Column, 0, count)
	seen := make(map[string]bool)
	for i := 0; i < count; i++ {
		var name string
		for {
			name, err = s.promptIdentifier(fmt.Sprintf("Column %d name: ", i+1))
			if err != nil {
				return err
			}
			if seen[name] {
				fmt.Fprintf(s.out, "Column %s already declared\n", name)
				continue
			}
			break
		}
		seen[name] = true

		var colType types.ColumnType
		for {
			choice, err := s.prompt("Column type (1 = int, 2 = string): ")
			if err != nil {
				return err
			}
			if choice == "1" {
				colType = types.ColumnTypeInt
				break
			}
			if choice == "2" {
				colType = types.ColumnTypeText
				break
			}
			fmt.Fprintln(s.out, "Enter 1 or 2")
		}
		columns = append(columns, types.Column{Name: name, Type: colType})
	}

	for {
		pk, err := s.prompt("Primary key column: ")
		if err != nil {
			return err
		}
		if seen[pk] {
			for i := range columns {
				columns[i].PrimaryKey = columns[i].Name == pk
			}
			break
		}
		fmt.Fprintln(s.out, "Choose one of the declared columns")
	}

	if err := store.Catalog.Create(table, columns); err != nil {
		s.report(err)
		return nil
	}
	fmt.Fprintf(s.out, "Table %s created\n", table)
	return nil
}

func (s *Session) listTables(store *storage.Store) error {
	tables, err := store.Catalog.List()
	if err != nil {
		s.report(err)
		return nil
	}
	if len(tables) == 0 {
		fmt.Fprintln(s.out, "No tables")
		return nil
	}
	for _, table := range tables {
		fmt.Fprintln(s.out, table)
	}
	return nil
}

// insertRecord collects one value per column in schema order. A rejected
// value re-prompts for that field only; fields already accepted are kept,
// and nothing is persisted until every field has been accepted.
func (s *Session) insertRecord(store *storage.Store) error {
	table, err := s.promptIdentifier("Table name: ")
	if err != nil {
		return err
	}
	columns, err := store.Schemas.Load(table)
	if err != nil {
		s.report(err)
		return nil
	}

	fields := make(types.Row, 0, len(columns))
	for _, col := range columns {
		for {
			value, err := s.prompt(fmt.Sprintf("%s (%s): ", col.Name, col.Type))
			if err != nil {
				return err
			}
			if checkErr := store.Rows.CheckField(col, value); checkErr != nil {
				s.report(checkErr)
				continue
			}
			if col.PrimaryKey {
				if pkErr := store.Rows.CheckPrimaryKey(table, value); pkErr != nil {
					s.report(pkErr)
					continue
				}
			}
			fields = append(fields, value)
			break
		}
	}

	if err := store.Rows.Insert(table, fields); err != nil {
		s.report(err)
		return nil
	}
	fmt.Fprintln(s.out, "Record inserted")
	return nil
}

func (s *Session) showAllRecords(store *storage.Store) error {
	table, err := s.promptIdentifier("Table name: ")
	if err != nil {
		return err
	}
	columns, loadErr := store.Schemas.Load(table)
	if loadErr != nil {
		s.report(loadErr)
		return nil
	}
	rows, selErr := store.Rows.SelectAll(table)
	if selErr != nil {
		s.report(selErr)
		return nil
	}
	s.printRows(columns, rows)
	return nil
}

func (s *Session) findRecord(store *storage.Store) error {
	table, err := s.promptIdentifier("Table name: ")
	if err != nil {
		return err
	}
	key, err := s.prompt("Primary key value: ")
	if err != nil {
		return err
	}
	columns, loadErr := store.Schemas.Load(table)
	if loadErr != nil {
		s.report(loadErr)
		return nil
	}
	row, selErr := store.Rows.SelectByKey(table, key)
	if selErr != nil {
		s.report(selErr)
		return nil
	}
	s.printRows(columns, []types.Row{row})
	return nil
}

func (s *Session) showColumn(store *storage.Store) error {
	table, err := s.promptIdentifier("Table name: ")
	if err != nil {
		return err
	}
	column, err := s.promptIdentifier("Column name: ")
	if err != nil {
		return err
	}
	values, selErr := store.Rows.SelectColumn(table, column)
	if selErr != nil {
		s.report(selErr)
		return nil
	}
	if len(values) == 0 {
		fmt.Fprintln(s.out, "Empty result set")
		return nil
	}
	for _, value := range values {
		fmt.Fprintln(s.out, value)
	}
	return nil
}

func (s *Session) updateField(store *storage.Store) error {
	table, err := s.promptIdentifier("Table name: ")
	if err != nil {
		return err
	}
	key, err := s.prompt("Primary key value: ")
	if err != nil {
		return err
	}
	column, err := s.promptIdentifier("Column name: ")
	if err != nil {
		return err
	}
	value, err := s.prompt("New value: ")
	if err != nil {
		return err
	}
	if updErr := store.Rows.Update(table, key, column, value); updErr != nil {
		s.report(updErr)
		return nil
	}
	fmt.Fprintln(s.out, "Record updated")
	return nil
}

func (s *Session) deleteRecord(store *storage.Store) error {
	table, err := s.promptIdentifier("Table name: ")
	if err != nil {
		return err
	}
	key, err := s.prompt("Primary key value: ")
	if err != nil {
		return err
	}
	removed, delErr := store.Rows.DeleteByKey(table, key)
	if delErr != nil {
		s.report(delErr)
		return nil
	}
	fmt.Fprintf(s.out, "%d record(s) deleted\n", removed)
	return nil
}

func (s *Session) deleteAllRecords(store *storage.Store) error {
	table, err := s.promptIdentifier("Table name: ")
	if err != nil {
		return err
	}
	if delErr := store.Rows.DeleteAll(table); delErr != nil {
		s.report(delErr)
		return nil
	}
	fmt.Fprintln(s.out, "All records deleted")
	return nil
}

func (s *Session) deleteColumn(store *storage.Store) error {
	table, err := s.promptIdentifier("Table name: ")
	if err != nil {
		return err
	}
	column, err := s.promptIdentifier("Column name: ")
	if err != nil {
		return err
	}
	if delErr := store.Rows.DeleteColumn(table, column); delErr != nil {
		s.report(delErr)
		return nil
	}
	fmt.Fprintf(s.out, "Column %s deleted\n", column)
	return nil
}

func (s *Session) exportTable(store *storage.Store) error {
	table, err := s.promptIdentifier("Table name: ")
	if err != nil {
		return err
	}
	destDir, err := s.prompt("Export directory: ")
	if err != nil {
		return err
	}
	if destDir == "" {
		destDir = "."
	}
	path, expErr := store.ExportParquet(table, destDir)
	if expErr != nil {
		s.report(expErr)
		return nil
	}
	fmt.Fprintf(s.out, "Exported to %s\n", path)
	return nil
}

func (s *Session) dropTable(store *storage.Store) error {
	table, err := s.promptIdentifier("Table name: ")
	if err != nil {
		return err
	}
	if dropErr := store.Catalog.Drop(table); dropErr != nil {
		s.report(dropErr)
		return nil
	}
	fmt.Fprintf(s.out, "Table %s dropped\n", table)
	return nil
}

// printRows renders rows in a tabular format with a header of column
// names, sized to the widest value in each column.
func (s *Session) printRows(columns []types.Column, rows []types.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(s.out, "Empty result set")
		return
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col.Name)
	}
	for _, row := range rows {
		for i, field := range row {
			if len(field) > widths[i] {
				widths[i] = len(field)
			}
		}
	}

	for i, col := range columns {
		if i > 0 {
			fmt.Fprint(s.out, " | ")
		}
		fmt.Fprintf(s.out, "%-*s", widths[i], col.Name)
	}
	fmt.Fprintln(s.out)

	for i := range columns {
		if i > 0 {
			fmt.Fprint(s.out, "-+-")
		}
		fmt.Fprint(s.out, strings.Repeat("-", widths[i]))
	}
	fmt.Fprintln(s.out)

	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				fmt.Fprint(s.out, " | ")
			}
			fmt.Fprintf(s.out, "%-*s", widths[i], field)
		}
		fmt.Fprintln(s.out)
	}
}
