package main

import (
	"knowledgebase/config"
	"knowledgebase/global"
	"knowledgebase/router"
)

func main() {
	config.InitConfig()

	r := router.SetupRouter()

	port := config.AppConfig.App.Port
	if port == "" {
		port = ":3000"
	}

	global.Logger.Infof("Server running at http://localhost%s", port)
	if err := r.Run(port); err != nil {
		global.Logger.Fatalf("Failed to start server: %v", err)
	}
}
