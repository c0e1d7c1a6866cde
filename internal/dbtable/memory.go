package dbtable

import (
	"fmt"

	"tablekit/deepsize"
)

// TableMemory reports one table's estimated in-process footprint: a
// table with only linear-scan rows and no secondary index structure has
// just the one thing worth reporting, its own row vector.
type TableMemory struct {
	Table     string
	RowBytes  int64
	RowBytesH string
}

// MemoryUsage walks every table in the catalog and estimates its
// reachable heap footprint with deepsize.Of. This is a read-only
// diagnostic, not part of the data model's contract.
func MemoryUsage(cat *Catalog) []TableMemory {
	names := cat.TableNames()
	out := make([]TableMemory, 0, len(names))
	for _, name := range names {
		tbl, ok := cat.GetTableByName(name)
		if !ok {
			continue
		}
		b := deepsize.Of(tbl.Rows)
		out = append(out, TableMemory{
			Table:     name,
			RowBytes:  b,
			RowBytesH: humanBytes(b),
		})
	}
	return out
}

func humanBytes(b int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case b >= gb:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(gb))
	case b >= mb:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(mb))
	case b >= kb:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(kb))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
