package main

import (
	"github.com/streamworks/order_pipeline/internal/app/order"
)

func main() {
	order.Run()
}
