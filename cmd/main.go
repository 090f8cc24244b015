package main

import (
	"github.com/clearmart/oms/order/internal/app"
	"github.com/clearmart/oms/order/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
