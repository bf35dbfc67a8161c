package main

import (
	"fmt"
	"log"
	"os"

	"github.com/MrSnakeDoc/tacto/internal/app"
	"github.com/MrSnakeDoc/tacto/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "version") {
		fmt.Println(version.String())
		return
	}

	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ tacto failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ tacto stopped with error: %v", err)
	}
}
