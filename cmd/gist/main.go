package main

import (
	"os"

	"horse.fit/gist/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
