package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dfdavila2/workingWithDataInLWC/core"
	"github.com/dfdavila2/workingWithDataInLWC/external/ginserver"
	"github.com/dfdavila2/workingWithDataInLWC/external/metrics"
	"github.com/dfdavila2/workingWithDataInLWC/external/redisserver"
	"github.com/dfdavila2/workingWithDataInLWC/external/sqlite"
	"github.com/dfdavila2/workingWithDataInLWC/module/contacts"
	"github.com/dfdavila2/workingWithDataInLWC/module/toast"
)

func main() {
	app := core.New()

	server := ginserver.New()
	if err := app.RegisterExternal("http", server); err != nil {
		log.Fatalf("http server failed to register: %v", err)
	}

	db := sqlite.New()
	if err := app.RegisterExternal("db", db); err != nil {
		log.Fatalf("sqlite failed to register: %v", err)
	}
	if err := app.StartExternal("db"); err != nil {
		log.Fatalf("sqlite failed to start: %v", err)
	}

	bus := redisserver.New()
	if err := app.RegisterExternal("redis", bus); err != nil {
		log.Fatalf("redis failed to register: %v", err)
	}
	if err := app.StartExternal("redis"); err != nil {
		log.Fatalf("redis failed to start: %v", err)
	}

	meters := metrics.New(server.Engine())
	if err := app.RegisterExternal("metrics", meters); err != nil {
		log.Fatalf("metrics failed to register: %v", err)
	}
	if err := app.StartExternal("metrics"); err != nil {
		log.Fatalf("metrics failed to start: %v", err)
	}

	toasts := toast.NewModule(server.Engine(), bus, meters)
	if err := app.RegisterModule("toast", toasts); err != nil {
		log.Fatalf("toast module failed to register: %v", err)
	}
	if err := app.StartModule("toast"); err != nil {
		log.Fatalf("toast module failed to start: %v", err)
	}

	records := contacts.NewModule(server.Engine(), contacts.NewStore(db.DB()), toasts.Publisher(), meters)
	if err := app.RegisterModule("contacts", records); err != nil {
		log.Fatalf("contacts module failed to register: %v", err)
	}
	if err := app.StartModule("contacts"); err != nil {
		log.Fatalf("contacts module failed to start: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		if err := app.Stop(); err != nil {
			app.Logger().Error("shutdown error", core.Field{Key: "error", Value: err})
		}
	}()

	// Blocks until the framework context is cancelled by Stop.
	if err := app.StartExternal("http"); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}
