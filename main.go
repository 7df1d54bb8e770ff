// Package main provides the entry point for the MTG Card Scanner application.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"github.com/Samtronic789/Card-Scanner-MTG/internal/app"
	"github.com/Samtronic789/Card-Scanner-MTG/internal/ocr"
	"github.com/Samtronic789/Card-Scanner-MTG/ui/mainwindow"
	"github.com/Samtronic789/Card-Scanner-MTG/ui/prefs"
)

const (
	appTitle   = "MTG Card Scanner"
	appVersion = "0.1.0"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, appVersion)

	fyneApp := fyneapp.NewWithID("com.samtronic.cardscanner")
	fyneApp.Settings().SetTheme(&app.CardScannerTheme{})

	// Probe the OCR engine once at startup. When it is missing the app
	// still runs; records come out pending for manual entry.
	var recognizer ocr.Recognizer
	if engine, err := ocr.NewEngine(); err != nil {
		log.Printf("OCR engine unavailable: %v", err)
	} else {
		recognizer = engine
		defer engine.Close()
	}

	appState := app.NewState(recognizer)
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)
	win.SetTitle(appTitle)

	// Handle command line arguments
	if len(os.Args) > 1 {
		if err := win.SetFolder(os.Args[1]); err != nil {
			log.Printf("Failed to select folder %s: %v", os.Args[1], err)
		}
	}

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win)
	})

	reloader.Start()
}
