package main

import (
	"github.com/ciet-hostel/gatepass-svc/config"
	"github.com/ciet-hostel/gatepass-svc/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
