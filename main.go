// Command refguard runs the refguard analyzer as a standalone vet tool:
//
//	go vet -vettool=$(which refguard) -refguard.config=.refguard.yml ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/sirkon/refguard/internal/gohost"
)

func main() {
	singlechecker.Main(gohost.Analyzer)
}
