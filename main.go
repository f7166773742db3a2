package main

import "feed-sync-backend/internal/app"

func main() {
	app.Run()
}
