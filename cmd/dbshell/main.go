// Command dbshell is a tiny line-oriented REPL front end over the
// dbtable library. It is NOT a SQL parser — it only maps literal verbs
// onto the library's exported API, the way a debugger front end maps
// commands onto a program it's attached to.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"tablekit/internal/dbtable"
	"tablekit/internal/dbtable/dbprint"
)

// Config holds the two flags a line-oriented REPL needs: no port, no
// data directory, no TLS — this engine is in-memory only.
type Config struct {
	LogLevel int
	Script   string
}

func parseConfig() *Config {
	cfg := &Config{}
	flag.IntVar(&cfg.LogLevel, "log-level", envInt("DBSHELL_LOG_LEVEL", 0), "diagnostics verbosity (0=off, 1=commands)")
	flag.StringVar(&cfg.Script, "script", "", "read commands from a file instead of stdin")
	flag.Parse()
	return cfg
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func main() {
	cfg := parseConfig()

	var in io.Reader = os.Stdin
	if cfg.Script != "" {
		f, err := os.Open(cfg.Script)
		if err != nil {
			log.Fatalf("open script: %v", err)
		}
		defer f.Close()
		in = f
	}

	sh := newShell(cfg)
	sh.run(in, os.Stdout)
}

// shell holds the single catalog and engine a dbshell session drives.
// Both are process-scoped singletons — the shell itself adds no
// concurrency of its own.
type shell struct {
	cfg *Config
	cat *dbtable.Catalog
	eng *dbtable.Engine
}

func newShell(cfg *Config) *shell {
	cat := dbtable.NewCatalog()
	return &shell{cfg: cfg, cat: cat, eng: dbtable.NewEngine(cat)}
}

func (s *shell) run(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "dbshell — type 'help' for commands, 'quit' to exit")
	for {
		fmt.Fprint(out, "dbshell> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if s.cfg.LogLevel >= 1 {
			log.Printf("dbshell: %s", line)
		}
		if line == "quit" || line == "exit" {
			return
		}
		if err := s.dispatch(line, out); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

// dispatch maps one literal verb onto the dbtable API. Every verb is a
// space-separated command with positional arguments (create and insert
// take a variable number of them); there is no expression grammar,
// no operator precedence, and no query planning.
func (s *shell) dispatch(line string, out io.Writer) error {
	fields := strings.Fields(line)
	verb := fields[0]
	args := fields[1:]

	switch verb {
	case "help":
		s.printHelp(out)
	case "tables":
		for _, name := range s.cat.TableNames() {
			fmt.Fprintln(out, name)
		}
	case "create":
		return s.cmdCreate(args)
	case "insert":
		return s.cmdInsert(args)
	case "update":
		return s.cmdUpdate(args)
	case "delete":
		return s.cmdDelete(args)
	case "addcol":
		return s.cmdAddColumn(args)
	case "dropcol":
		return s.cmdDropColumn(args)
	case "addfk":
		return s.cmdAddForeignKey(args)
	case "begin":
		_, err := s.eng.Begin()
		return err
	case "commit":
		return s.eng.Commit()
	case "rollback":
		return s.eng.Rollback()
	case "print":
		return s.cmdPrint(args, out)
	case "memory":
		s.cmdMemory(out)
	default:
		return fmt.Errorf("unknown command %q (try 'help')", verb)
	}
	return nil
}

func (s *shell) printHelp(out io.Writer) {
	fmt.Fprintln(out, `commands:
  create <table> <col:type[:pk]>...   create a table (types: int, float, string)
  insert <table> <values...>          append a row
  update <table> <row> <col> <value>  overwrite one cell
  delete <table> <row>                remove a row
  addcol <table> <name> <type> <default>
  dropcol <table> <name>
  addfk <table> <col> <reftable.refcol>
  begin / commit / rollback
  print <table>
  tables
  memory
  quit`)
}

func (s *shell) cmdCreate(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: create <table> <col:type[:pk]>...")
	}
	name := args[0]
	cols := make([]dbtable.Column, 0, len(args)-1)
	for _, spec := range args[1:] {
		parts := strings.Split(spec, ":")
		if len(parts) < 2 {
			return fmt.Errorf("bad column spec %q, want name:type[:pk]", spec)
		}
		typ, err := parseType(parts[1])
		if err != nil {
			return err
		}
		col := dbtable.Column{Name: dbtable.NewIdent(parts[0]), Type: typ}
		if len(parts) == 3 && parts[2] == "pk" {
			col.IsPrimaryKey = true
		}
		cols = append(cols, col)
	}
	tbl, err := dbtable.CreateTable(name, cols)
	if err != nil {
		return err
	}
	return s.cat.AddTable(tbl)
}

func (s *shell) cmdInsert(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: insert <table> <values...>")
	}
	tbl, err := s.mustTable(args[0])
	if err != nil {
		return err
	}
	values, err := parseValues(args[1:], tbl.Columns)
	if err != nil {
		return err
	}
	return s.eng.InsertRow(tbl, values)
}

func (s *shell) cmdUpdate(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: update <table> <row> <col> <value>")
	}
	tbl, err := s.mustTable(args[0])
	if err != nil {
		return err
	}
	row, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad row index %q: %w", args[1], err)
	}
	colIdx := columnIndex(tbl, args[2])
	if colIdx < 0 {
		return fmt.Errorf("no such column %q", args[2])
	}
	v, err := parseScalar(args[3], tbl.Columns[colIdx].Type)
	if err != nil {
		return err
	}
	return s.eng.UpdateRow(tbl, row, colIdx, v)
}

func (s *shell) cmdDelete(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: delete <table> <row>")
	}
	tbl, err := s.mustTable(args[0])
	if err != nil {
		return err
	}
	row, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad row index %q: %w", args[1], err)
	}
	return s.eng.DeleteRow(tbl, row)
}

func (s *shell) cmdAddColumn(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: addcol <table> <name> <type> <default>")
	}
	tbl, err := s.mustTable(args[0])
	if err != nil {
		return err
	}
	typ, err := parseType(args[2])
	if err != nil {
		return err
	}
	def, err := parseScalar(args[3], typ)
	if err != nil {
		return err
	}
	return s.eng.AddColumn(tbl, args[1], typ, def)
}

func (s *shell) cmdDropColumn(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: dropcol <table> <name>")
	}
	tbl, err := s.mustTable(args[0])
	if err != nil {
		return err
	}
	return s.eng.DropColumn(tbl, args[1])
}

func (s *shell) cmdAddForeignKey(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: addfk <table> <col> <reftable.refcol>")
	}
	tbl, err := s.mustTable(args[0])
	if err != nil {
		return err
	}
	ref := strings.SplitN(args[2], ".", 2)
	if len(ref) != 2 {
		return fmt.Errorf("expected reftable.refcol, got %q", args[2])
	}
	return tbl.AddForeignKey(args[1], ref[0], ref[1])
}

func (s *shell) cmdPrint(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: print <table>")
	}
	tbl, err := s.mustTable(args[0])
	if err != nil {
		return err
	}
	return dbprint.Fprint(out, tbl)
}

func (s *shell) cmdMemory(out io.Writer) {
	for _, m := range dbtable.MemoryUsage(s.cat) {
		fmt.Fprintf(out, "%-20s %s\n", m.Table, m.RowBytesH)
	}
}

func (s *shell) mustTable(name string) (*dbtable.Table, error) {
	tbl, ok := s.cat.GetTableByName(name)
	if !ok {
		return nil, &dbtable.TableNotFoundError{Name: name}
	}
	return tbl, nil
}

func columnIndex(tbl *dbtable.Table, name string) int {
	for i, c := range tbl.Columns {
		if c.Name.String() == name {
			return i
		}
	}
	return -1
}

func parseType(s string) (dbtable.ColumnType, error) {
	switch s {
	case "int":
		return dbtable.TypeInt, nil
	case "float":
		return dbtable.TypeFloat, nil
	case "string":
		return dbtable.TypeString, nil
	}
	return 0, fmt.Errorf("unknown column type %q", s)
}

func parseValues(raw []string, cols []dbtable.Column) ([]any, error) {
	if len(raw) != len(cols) {
		return nil, fmt.Errorf("expected %d values, got %d", len(cols), len(raw))
	}
	out := make([]any, len(raw))
	for i, r := range raw {
		v, err := parseScalar(r, cols[i].Type)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseScalar(raw string, t dbtable.ColumnType) (any, error) {
	switch t {
	case dbtable.TypeInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int %q: %w", raw, err)
		}
		return n, nil
	case dbtable.TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("bad float %q: %w", raw, err)
		}
		return f, nil
	default:
		return raw, nil
	}
}
