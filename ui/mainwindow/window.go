// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/Samtronic789/Card-Scanner-MTG/internal/app"
	img "github.com/Samtronic789/Card-Scanner-MTG/internal/image"
	"github.com/Samtronic789/Card-Scanner-MTG/internal/scan"
	"github.com/Samtronic789/Card-Scanner-MTG/internal/version"
	"github.com/Samtronic789/Card-Scanner-MTG/ui/panels"
	"github.com/Samtronic789/Card-Scanner-MTG/ui/prefs"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	preview *panels.PreviewPanel
	review  *panels.ReviewPanel

	folderLabel   *widget.Label
	outputLabel   *widget.Label
	progress      *widget.ProgressBar
	progressLabel *widget.Label
	statusBar     *widget.Label

	processBtn *widget.Button
	stopBtn    *widget.Button
	exportBtn  *widget.Button
}

// New creates the main window bound to state.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("MTG Card Scanner")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreSession()

	win.Resize(fyne.NewSize(1200, 750))
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.preview = panels.NewPreviewPanel()
	mw.review = panels.NewReviewPanel(mw.state)

	mw.statusBar = widget.NewLabel("Ready")
	if !mw.state.OCRAvailable() {
		mw.statusBar.SetText("OCR engine not available - cards will be listed for manual entry")
		mw.review.AppendLog("OCR engine not available; records will start as pending")
	}

	toolbar := mw.createToolbar()

	// Preview pane | review pane
	split := container.NewHSplit(
		mw.preview.Container(),
		mw.review.Container(),
	)
	split.SetOffset(0.35)

	content := container.NewBorder(
		toolbar,                           // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
}

// createToolbar creates the folder/output controls and the progress bar.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	mw.folderLabel = widget.NewLabel("No folder selected")
	mw.outputLabel = widget.NewLabel("No output file")

	folderBtn := widget.NewButton("Select Folder...", mw.onSelectFolder)
	outputBtn := widget.NewButton("Output CSV...", mw.onSetOutput)

	mw.processBtn = widget.NewButton("Process Images", mw.onProcessAll)
	mw.stopBtn = widget.NewButton("Stop", mw.onStop)
	mw.stopBtn.Disable()
	mw.exportBtn = widget.NewButton("Export CSV", mw.onExportCSV)

	mw.progress = widget.NewProgressBar()
	mw.progressLabel = widget.NewLabel("")

	top := container.NewHBox(
		folderBtn, mw.folderLabel,
		widget.NewSeparator(),
		outputBtn, mw.outputLabel,
	)
	bottom := container.NewBorder(
		nil, nil,
		container.NewHBox(mw.processBtn, mw.stopBtn, mw.exportBtn),
		mw.progressLabel,
		mw.progress,
	)
	return container.NewVBox(top, bottom)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Select Folder...", mw.onSelectFolder),
		fyne.NewMenuItem("Set Output CSV...", mw.onSetOutput),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export CSV", mw.onExportCSV),
		fyne.NewMenuItem("Export XLSX...", mw.onExportXLSX),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	scanMenu := fyne.NewMenu("Scan",
		fyne.NewMenuItem("Process Images", mw.onProcessAll),
		fyne.NewMenuItem("Stop Processing", mw.onStop),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reprocess Selected", mw.onReprocess),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, scanMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventScanStarted, func(interface{}) {
		mw.processBtn.Disable()
		mw.stopBtn.Enable()
		mw.progress.SetValue(0)
		mw.preview.Clear()
		mw.updateStatus("Processing...")
	})

	mw.state.On(app.EventScanProgress, func(data interface{}) {
		p, ok := data.(scan.Progress)
		if !ok {
			return
		}
		if p.Total > 0 {
			mw.progress.SetValue(float64(p.Done) / float64(p.Total))
		}
		mw.progressLabel.SetText(fmt.Sprintf("%d / %d", p.Done, p.Total))
		mw.updateStatus("Processing " + p.File)
	})

	mw.state.On(app.EventScanFinished, func(data interface{}) {
		mw.processBtn.Enable()
		mw.stopBtn.Disable()
		if sum, ok := data.(scan.Summary); ok {
			if sum.Stopped {
				mw.updateStatus(fmt.Sprintf("Stopped after %d images", sum.Total))
			} else {
				mw.updateStatus(fmt.Sprintf("Done: %d images (%d recognized, %d failed, %d pending)",
					sum.Total, sum.Succeeded, sum.Failed, sum.Pending))
			}
		} else {
			mw.updateStatus("Done")
		}
	})

	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		idx, ok := data.(int)
		if !ok {
			return
		}
		rec, err := mw.state.Records.At(idx)
		if err != nil {
			mw.preview.Clear()
			return
		}
		mw.preview.SetImagePath(rec.Path)
	})

	mw.state.On(app.EventExported, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Exported to " + path)
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// restoreSession reloads the last folder and output path from preferences.
func (mw *MainWindow) restoreSession() {
	if folder := mw.prefs.String(prefs.KeyLastFolder); folder != "" {
		if err := mw.state.SetInputFolder(folder); err == nil {
			mw.folderLabel.SetText(folder)
		}
	}
	if out := mw.prefs.String(prefs.KeyLastOutput); out != "" {
		mw.state.SetOutputPath(out)
		mw.outputLabel.SetText(out)
	}
}

// SetFolder selects an input folder programmatically, e.g. from a
// command-line argument.
func (mw *MainWindow) SetFolder(path string) error {
	if err := mw.state.SetInputFolder(path); err != nil {
		return err
	}
	mw.folderLabel.SetText(path)
	mw.prefs.SetString(prefs.KeyLastFolder, path)
	_ = mw.prefs.Save()
	return nil
}

// lastDirURI returns the last used folder as a ListableURI, or nil.
func (mw *MainWindow) lastDirURI(key string) fyne.ListableURI {
	path := mw.prefs.String(key)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// Menu and toolbar action handlers

func (mw *MainWindow) onSelectFolder() {
	fd := dialog.NewFolderOpen(func(list fyne.ListableURI, err error) {
		if err != nil || list == nil {
			return
		}
		path := list.Path()
		if err := mw.state.SetInputFolder(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.folderLabel.SetText(path)
		mw.prefs.SetString(prefs.KeyLastFolder, path)
		_ = mw.prefs.Save()
	}, mw.Window)
	if loc := mw.lastDirURI(prefs.KeyLastFolder); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSetOutput() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".csv" {
			path += ".csv"
		}
		mw.state.SetOutputPath(path)
		mw.outputLabel.SetText(path)
		mw.prefs.SetString(prefs.KeyLastOutput, path)
		_ = mw.prefs.Save()
	}, mw.Window)
	fd.SetFileName("cards.csv")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
	if loc := mw.lastDirURI(prefs.KeyLastOutput); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onProcessAll() {
	if err := mw.state.ProcessAll(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onStop() {
	mw.state.StopProcessing()
	mw.updateStatus("Stopping after current image...")
}

func (mw *MainWindow) onReprocess() {
	idx := mw.state.Selected()
	if idx < 0 {
		mw.updateStatus("Select a card to reprocess")
		return
	}
	if err := mw.state.ReprocessRecord(idx); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onExportCSV() {
	if mw.state.OutputPath() == "" {
		mw.onSetOutput()
		return
	}
	if err := mw.state.ExportCSV(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onExportXLSX() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".xlsx" {
			path += ".xlsx"
		}
		if err := mw.state.ExportXLSX(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("cards.xlsx")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx"}))
	if loc := mw.lastDirURI(prefs.KeyLastOutput); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About MTG Card Scanner",
		fmt.Sprintf("MTG Card Scanner v%s\n\n"+
			"Batch OCR for Magic: The Gathering card photos.\n\n"+
			"Supported formats: %v\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, img.SupportedFormats(),
			version.BuildTime, version.GitCommit),
		mw.Window)
}
