package main

import (
	"github.com/streamworks/order_pipeline/internal/app/inventory"
)

func main() {
	inventory.Run()
}
