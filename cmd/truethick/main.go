// Command truethick is an interactive terminal worksheet for structural
// orientation conversions and intercept analysis.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/urfave/cli"

	"truethick/internal/orient"
)

const calcFailedMsg = "[red]A calculation error occurred. Please check your inputs and try again."

func main() {
	app := cli.NewApp()
	app.Name = "truethick"
	app.Usage = "interactive structural orientation and true thickness worksheet"
	app.Action = func(c *cli.Context) error {
		return runUI()
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// field is a validated numeric form input.
type field struct {
	label    string
	initial  float64
	lo, hi   float64
	halfOpen bool // [lo,hi) instead of [lo,hi]
}

func (f field) addTo(form *tview.Form) {
	form.AddInputField(f.label, strconv.FormatFloat(f.initial, 'f', -1, 64), 12, nil, nil)
}

func (f field) value(form *tview.Form) (float64, error) {
	item := form.GetFormItemByLabel(f.label).(*tview.InputField)
	v, err := strconv.ParseFloat(item.GetText(), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number", f.label)
	}
	if v < f.lo || v > f.hi || (f.halfOpen && v == f.hi) {
		return 0, fmt.Errorf("%s: out of range", f.label)
	}
	return v, nil
}

var (
	holeAzField   = field{label: "Hole Azimuth (deg)", initial: 240, lo: 0, hi: 360, halfOpen: true}
	holeDipField  = field{label: "Hole Dip (deg)", initial: -60, lo: -90, hi: 0}
	alphaField    = field{label: "Alpha (deg)", initial: 60, lo: 0, hi: 90}
	betaField     = field{label: "Beta (deg)", initial: 30, lo: 0, hi: 360, halfOpen: true}
	sDipDirField  = field{label: "Dip Direction (deg)", initial: 135, lo: 0, hi: 360, halfOpen: true}
	sDipField     = field{label: "Dip (deg)", initial: 45, lo: 0, hi: 90}
	lengthField   = field{label: "Downhole Length (m)", initial: 10, lo: 0, hi: 1000}
	gradeField    = field{label: "Avg Grade (g/t)", initial: 5, lo: 0, hi: 1000}
	dirAlphaField = field{label: "Direct Alpha (deg)", initial: 60, lo: 0, hi: 90}
)

func runUI() error {
	app := tview.NewApplication()
	pages := tview.NewPages()

	pages.AddPage("orientation", orientationPage(app, pages), true, true)
	pages.AddPage("intercept", interceptPage(app, pages), true, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			pages.SwitchToPage("orientation")
			return nil
		case tcell.KeyF2:
			pages.SwitchToPage("intercept")
			return nil
		case tcell.KeyEsc:
			app.Stop()
			return nil
		}
		return event
	})

	return app.SetRoot(pages, true).EnableMouse(true).Run()
}

func resultView(title string) *tview.TextView {
	tv := tview.NewTextView().SetDynamicColors(true)
	tv.SetBorder(true).SetTitle(title)
	return tv
}

func page(form *tview.Form, result *tview.TextView) tview.Primitive {
	header := tview.NewTextView().
		SetDynamicColors(true).
		SetText("[gold::b]TrueThick[-::-]  Structural Orientation & True Thickness Analysis   [gray](F1 orientation, F2 intercept, Esc quits)")
	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(form, 0, 3, true).
		AddItem(result, 0, 1, false)
}

func orientationPage(app *tview.Application, pages *tview.Pages) tview.Primitive {
	result := resultView("Final Orientation")

	form := tview.NewForm()
	form.SetBorder(true).SetTitle("Orientation Solver")

	mode := 0
	form.AddDropDown("Measurement Input Mode",
		[]string{"Alpha/Beta (Kenometer)", "Dip/DipDir (Orientation)"}, 0,
		func(_ string, index int) { mode = index })

	for _, f := range []field{holeAzField, holeDipField, alphaField, betaField, sDipDirField, sDipField} {
		f.addTo(form)
	}

	form.AddButton("Solve", func() { solveOrientation(form, result, mode) })
	form.AddButton("Intercept Analysis", func() { pages.SwitchToPage("intercept") })
	form.AddButton("Quit", app.Stop)

	return page(form, result)
}

func solveOrientation(form *tview.Form, result *tview.TextView, mode int) {
	holeAz, err := holeAzField.value(form)
	if err != nil {
		result.SetText("[red]" + err.Error())
		return
	}
	holeDip, err := holeDipField.value(form)
	if err != nil {
		result.SetText("[red]" + err.Error())
		return
	}

	if mode == 0 {
		alpha, err := alphaField.value(form)
		if err != nil {
			result.SetText("[red]" + err.Error())
			return
		}
		beta, err := betaField.value(form)
		if err != nil {
			result.SetText("[red]" + err.Error())
			return
		}

		dip, dipdir, strike, err := orient.AlphaBetaToDipDipdir(holeAz, holeDip, alpha, beta)
		if err != nil {
			result.SetText(calcFailedMsg)
			return
		}
		result.SetText(fmt.Sprintf("[gold]DIP[-] %.1f   [gold]DIP DIRECTION[-] %.1f   [gold]STRIKE[-] %.1f", dip, dipdir, strike))
		return
	}

	sDipdir, err := sDipDirField.value(form)
	if err != nil {
		result.SetText("[red]" + err.Error())
		return
	}
	sDip, err := sDipField.value(form)
	if err != nil {
		result.SetText("[red]" + err.Error())
		return
	}

	hole, err := orient.HoleVector(holeAz, holeDip)
	if err != nil {
		result.SetText(calcFailedMsg)
		return
	}
	normal, err := orient.PlaneNormalFromDipDipdir(sDip, sDipdir)
	if err != nil {
		result.SetText(calcFailedMsg)
		return
	}
	alphaNormal := orient.AlphaNormal(hole, normal)
	beta, err := orient.Beta(hole, normal)
	if err != nil {
		result.SetText(calcFailedMsg)
		return
	}
	result.SetText(fmt.Sprintf("[gold]ALPHA[-] %.1f   [gold]BETA[-] %.1f", orient.AlphaKenometer(alphaNormal), beta))
}

func interceptPage(app *tview.Application, pages *tview.Pages) tview.Primitive {
	result := resultView("Calculated Metrics")

	form := tview.NewForm()
	form.SetBorder(true).SetTitle("Intercept Analysis")

	method := 0
	form.AddDropDown("Calculation Method",
		[]string{"Structural Orientation (Dip/DipDir)", "Alpha Angle (Kenometer)"}, 0,
		func(_ string, index int) { method = index })

	for _, f := range []field{holeAzField, holeDipField, sDipDirField, sDipField, dirAlphaField, lengthField, gradeField} {
		f.addTo(form)
	}

	form.AddButton("Analyze", func() { analyzeIntercept(form, result, method) })
	form.AddButton("Orientation Solver", func() { pages.SwitchToPage("orientation") })
	form.AddButton("Quit", app.Stop)

	return page(form, result)
}

func analyzeIntercept(form *tview.Form, result *tview.TextView, method int) {
	length, err := lengthField.value(form)
	if err != nil {
		result.SetText("[red]" + err.Error())
		return
	}
	grade, err := gradeField.value(form)
	if err != nil {
		result.SetText("[red]" + err.Error())
		return
	}

	var alpha float64
	if method == 0 {
		holeAz, err := holeAzField.value(form)
		if err != nil {
			result.SetText("[red]" + err.Error())
			return
		}
		holeDip, err := holeDipField.value(form)
		if err != nil {
			result.SetText("[red]" + err.Error())
			return
		}
		sDipdir, err := sDipDirField.value(form)
		if err != nil {
			result.SetText("[red]" + err.Error())
			return
		}
		sDip, err := sDipField.value(form)
		if err != nil {
			result.SetText("[red]" + err.Error())
			return
		}

		hole, err := orient.HoleVector(holeAz, holeDip)
		if err != nil {
			result.SetText(calcFailedMsg)
			return
		}
		normal, err := orient.PlaneNormalFromDipDipdir(sDip, sDipdir)
		if err != nil {
			result.SetText(calcFailedMsg)
			return
		}
		alpha = orient.AlphaKenometer(orient.AlphaNormal(hole, normal))
	} else {
		alpha, err = dirAlphaField.value(form)
		if err != nil {
			result.SetText("[red]" + err.Error())
			return
		}
	}

	tt := orient.TrueThicknessFromAlpha(length, alpha)
	gm := orient.GramMeters(grade, tt)
	_, note := orient.RateIntercept(alpha)

	result.SetText(fmt.Sprintf(
		"[gold]TRUE THICKNESS[-] %.2f m   [gold]GRAM-METERS[-] %.1f   [gold]INTERSECTION ALPHA[-] %.1f\n%s",
		tt, gm, alpha, note))
}
