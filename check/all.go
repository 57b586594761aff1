package check

import (
	"sync"

	"github.com/rhymelang/rhyme/ast"
)

// CheckAll checks each unit in its own goroutine.
// The ith Info and error are the results of Check on the ith unit.
// Units share no checking state,
// but they must not share syntax tree nodes.
func CheckAll(units []*ast.Unit, cfg Config) ([]*Info, []error) {
	infos := make([]*Info, len(units))
	errs := make([]error, len(units))
	var wg sync.WaitGroup
	for i, u := range units {
		wg.Add(1)
		go func(i int, u *ast.Unit) {
			defer wg.Done()
			infos[i], errs[i] = Check(u, cfg)
		}(i, u)
	}
	wg.Wait()
	return infos, errs
}
