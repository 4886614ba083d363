// Command autos cleans a used-car listing export and reports mean price and
// mileage per brand.
//
//	autos run autos.csv --top 6 --sort price
//	autos describe autos.csv
//	autos validate --config autos.yaml
//	autos sample --rows 1000 > synthetic.csv
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fatalf("error: %v", err)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
