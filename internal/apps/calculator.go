package apps

import (
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// CalcMode is a calculator tab.
type CalcMode int

const (
	CalcStandard CalcMode = iota
	CalcProgrammer
	CalcUnits
	CalcConstants
)

var calcModes = []string{"standard", "programmer", "units", "constants"}

func (m CalcMode) String() string {
	if int(m) < len(calcModes) {
		return calcModes[m]
	}
	return "unknown"
}

type constant struct {
	Name   string
	Symbol string
	Value  string
	Unit   string
	// Number is what "use" places in the display.
	Number string
}

var physicsConstants = []constant{
	{"Speed of Light", "c", "299,792,458", "m/s", "299792458"},
	{"Planck Constant", "h", "6.626 x 10⁻³⁴", "J·s", "6.626e-34"},
	{"Gravitational Constant", "G", "6.674 x 10⁻¹¹", "m³/kg·s²", "6.674e-11"},
	{"Boltzmann Constant", "k", "1.380 x 10⁻²³", "J/K", "1.38e-23"},
	{"Electron Mass", "mₑ", "9.109 x 10⁻³¹", "kg", "9.109e-31"},
}

const calcError = "Error"

// Calculator is a four-function calculator with a programmer readout and a
// table of physical constants.
type Calculator struct {
	mode    CalcMode
	display string
	// pending holds the left operand and operator while the right operand
	// is being typed.
	pending  string
	op       string
	entering bool
}

func NewCalculator() *Calculator {
	return &Calculator{display: "0"}
}

// Display returns the current display text.
func (c *Calculator) Display() string { return c.display }

// Equation returns the pending left operand and operator.
func (c *Calculator) Equation() string {
	if c.op == "" {
		return ""
	}
	return c.pending + " " + c.op + " "
}

// Mode returns the active tab.
func (c *Calculator) Mode() CalcMode { return c.mode }

// SetMode switches tabs.
func (c *Calculator) SetMode(m CalcMode) {
	if m >= CalcStandard && m <= CalcConstants {
		c.mode = m
	}
}

// Digit appends a digit or the decimal point to the display.
func (c *Calculator) Digit(d string) {
	if c.display == calcError || !c.entering {
		c.display = "0"
		c.entering = true
	}
	if d == "." {
		if !strings.Contains(c.display, ".") {
			c.display += "."
		}
		return
	}
	if c.display == "0" {
		c.display = d
		return
	}
	c.display += d
}

// Operator records op, evaluating any pending operation first.
func (c *Calculator) Operator(op string) {
	if c.display == calcError {
		return
	}
	if c.op != "" && c.entering {
		c.Equals()
		if c.display == calcError {
			return
		}
	}
	c.pending = c.display
	c.op = op
	c.entering = false
}

// Equals evaluates the pending operation.
func (c *Calculator) Equals() {
	if c.op == "" {
		c.entering = false
		return
	}
	left, errL := strconv.ParseFloat(c.pending, 64)
	right, errR := strconv.ParseFloat(c.display, 64)
	op := c.op
	c.pending, c.op, c.entering = "", "", false
	if errL != nil || errR != nil {
		c.display = calcError
		return
	}
	var v float64
	switch op {
	case "+":
		v = left + right
	case "-":
		v = left - right
	case "×":
		v = left * right
	case "÷":
		if right == 0 {
			c.display = calcError
			return
		}
		v = left / right
	}
	c.display = formatNumber(v)
}

// Clear resets the display and pending operation.
func (c *Calculator) Clear() {
	*c = Calculator{mode: c.mode, display: "0"}
}

// Negate flips the sign of the display.
func (c *Calculator) Negate() {
	c.unary(func(v float64) float64 { return -v })
}

// Percent divides the display by one hundred.
func (c *Calculator) Percent() {
	c.unary(func(v float64) float64 { return v / 100 })
}

func (c *Calculator) unary(f func(float64) float64) {
	v, err := strconv.ParseFloat(c.display, 64)
	if err != nil {
		return
	}
	c.display = formatNumber(f(v))
}

// Backspace removes the last typed character.
func (c *Calculator) Backspace() {
	if !c.entering || c.display == calcError {
		return
	}
	c.display = c.display[:len(c.display)-1]
	if c.display == "" || c.display == "-" {
		c.display = "0"
	}
}

// UseConstant places the i-th physical constant in the display.
func (c *Calculator) UseConstant(i int) bool {
	if i < 0 || i >= len(physicsConstants) {
		return false
	}
	c.display = physicsConstants[i].Number
	c.entering = false
	return true
}

// Radix returns the display truncated to an integer in the given base.
func (c *Calculator) Radix(base int) string {
	v, err := strconv.ParseFloat(c.display, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		v = 0
	}
	return strings.ToUpper(strconv.FormatInt(int64(v), base))
}

func formatNumber(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return calcError
	}
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 12, 64)
}

func (c *Calculator) Update(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "tab":
		c.mode = (c.mode + 1) % CalcMode(len(calcModes))
		return nil
	case "shift+tab":
		c.mode = (c.mode + CalcMode(len(calcModes)) - 1) % CalcMode(len(calcModes))
		return nil
	}
	if c.mode == CalcConstants {
		if n, err := strconv.Atoi(key); err == nil {
			c.UseConstant(n - 1)
		}
		return nil
	}
	switch key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		c.Digit(key)
	case "+", "-":
		c.Operator(key)
	case "*", "x":
		c.Operator("×")
	case "/":
		c.Operator("÷")
	case "enter", "=":
		c.Equals()
	case "esc", "c":
		c.Clear()
	case "backspace":
		c.Backspace()
	case "%":
		c.Percent()
	case "n", "_":
		c.Negate()
	}
	return nil
}

// Click switches tabs when the tab row is clicked.
func (c *Calculator) Click(x, y int) tea.Cmd {
	if y != 0 {
		return nil
	}
	col := 0
	for i, name := range calcModes {
		w := runewidth.StringWidth(name) + 3
		if x >= col && x < col+w {
			c.mode = CalcMode(i)
			return nil
		}
		col += w
	}
	return nil
}

func (c *Calculator) tabs() string {
	var b strings.Builder
	for i, name := range calcModes {
		if CalcMode(i) == c.mode {
			b.WriteString("[" + strings.ToUpper(name) + "] ")
		} else {
			b.WriteString(" " + name + "  ")
		}
	}
	return b.String()
}

func (c *Calculator) Render(width, height int) []string {
	if height <= 0 {
		return nil
	}
	right := func(s string) string {
		pad := width - runewidth.StringWidth(s)
		return strings.Repeat(" ", max(pad, 0)) + s
	}
	out := []string{c.tabs(), "", right(c.Equation()), right(c.display), ""}

	switch c.mode {
	case CalcStandard:
		out = append(out, calcKeypad...)
	case CalcProgrammer:
		out = append(out,
			"HEX  "+c.Radix(16),
			"DEC  "+c.display,
			"OCT  "+c.Radix(8),
			"BIN  "+c.Radix(2),
			"",
		)
		out = append(out, calcKeypad...)
	case CalcUnits:
		out = append(out, center("Unit conversion engine initializing...", width))
	case CalcConstants:
		for i, k := range physicsConstants {
			out = append(out,
				strconv.Itoa(i+1)+". "+k.Name,
				"   "+k.Symbol+" = "+k.Value+" "+k.Unit,
			)
		}
		out = append(out, "", "press a number to use a constant")
	}
	if len(out) > height {
		out = out[:height]
	}
	return out
}

var calcKeypad = []string{
	" AC   ±    %    ÷",
	" 7    8    9    ×",
	" 4    5    6    -",
	" 1    2    3    +",
	" 0         .    =",
}
