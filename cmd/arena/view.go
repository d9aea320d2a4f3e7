package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/udisondev/battlecore/internal/game/battle"
	"github.com/udisondev/battlecore/internal/model"
)

// repeatWindow swallows terminal auto-repeat of a held key.
const repeatWindow = 100 * time.Millisecond

const (
	barWidth  = 24
	logLines  = 8
	panelLeft = 2
)

var (
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHP       = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHPLow    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleEnergy   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleChip     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorFuchsia)
	styleCard     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleCardOff  = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleReject   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleResult   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleThinking = tcell.StyleDefault.Foreground(tcell.ColorLightYellow).Italic(true)
)

// view draws a battle session onto a tcell screen and turns keystrokes into
// session input. It runs on the goroutine that owns the session.
type view struct {
	screen  tcell.Screen
	session *battle.Session

	title cases.Caser
	upper cases.Caser

	lastKey   rune
	lastKeyAt time.Time
	now       func() time.Time
}

func newView(screen tcell.Screen, session *battle.Session) *view {
	return &view{
		screen:  screen,
		session: session,
		title:   cases.Title(language.English),
		upper:   cases.Upper(language.English),
		now:     time.Now,
	}
}

// handleKey applies one keystroke. It returns true when the player quits.
func (v *view) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	r := ev.Rune()
	at := v.now()
	if r == v.lastKey && at.Sub(v.lastKeyAt) < repeatWindow {
		v.lastKeyAt = at
		return false
	}
	v.lastKey, v.lastKeyAt = r, at

	switch {
	case r == 'q' || r == 'Q':
		return true
	case r == 'r' || r == 'R':
		v.session.Start()
	case r >= '0' && r <= '9':
		if err := v.session.SubmitPlayerSkill(string(r)); err != nil {
			slog.Debug("input ignored", "key", string(r), "err", err)
		}
	}
	return false
}

// draw repaints the whole screen from a fresh snapshot.
func (v *view) draw() {
	v.screen.Clear()
	snap := v.session.Snapshot()
	w, _ := v.screen.Size()

	header := fmt.Sprintf("BATTLECORE ARENA   Turn %d", snap.Turn)
	v.put(panelLeft, 0, header, styleTitle)
	if id := snap.BattleID; len(id) >= 8 {
		v.put(max(panelLeft, w-len(id[:8])-panelLeft), 0, id[:8], styleDim)
	}

	half := max(w/2, panelLeft+barWidth+12)
	v.drawCombatant(panelLeft, 2, snap.Player, snap.PlayerTurn)
	v.drawCombatant(half, 2, snap.Opponent, !snap.PlayerTurn)

	y := v.drawSkills(7)
	y = v.drawLog(y + 1)

	switch {
	case snap.Conclusion != nil:
		v.drawResult(y+1, *snap.Conclusion)
	case snap.Locked:
		v.put(panelLeft, y+1, fmt.Sprintf("%s is thinking...", v.title.String(snap.Opponent.Name)), styleThinking)
	}

	v.put(panelLeft, y+4, "[0-9] use skill   [r] restart   [q/Esc] quit", styleDim)
	v.screen.Show()
}

func (v *view) drawCombatant(x, y int, c model.Snapshot, active bool) {
	name := v.title.String(c.Name)
	if active {
		name = "> " + name
	}
	v.put(x, y, name, styleText)

	hpStyle := styleHP
	if c.HPRatio() <= 0.3 {
		hpStyle = styleHPLow
	}
	v.put(x, y+1, "HP "+bar(c.HPRatio()), hpStyle)
	v.put(x+barWidth+4, y+1, fmt.Sprintf("%d/%d", c.HP, c.MaxHP), styleText)
	v.put(x, y+2, "EN "+bar(c.EnergyRatio()), styleEnergy)
	v.put(x+barWidth+4, y+2, fmt.Sprintf("%d/%d", c.Energy, c.MaxEnergy), styleText)

	cx := x
	for _, st := range c.Statuses {
		chip := v.chip(st)
		v.put(cx, y+3, chip, styleChip)
		cx += len(chip) + 1
	}
}

// chip renders a status as e.g. "BURN (2)".
func (v *view) chip(st model.Status) string {
	return fmt.Sprintf("%s (%d)", v.upper.String(st.Kind.String()), st.Duration)
}

func (v *view) drawSkills(y int) int {
	v.put(panelLeft, y, "SKILLS", styleTitle)
	y++
	for _, card := range v.session.PlayerSkills() {
		style := styleCard
		if !card.Usable {
			style = styleCardOff
		}
		v.put(panelLeft, y, skillLine(card), style)
		y++
	}
	return y
}

func skillLine(card battle.SkillCard) string {
	sk := card.Skill
	power := fmt.Sprintf("DMG %2d", sk.Damage)
	if sk.IsUtility() {
		power = "utility"
	}
	line := fmt.Sprintf("[%s] %-14s %-9s %-8s EN %2d  CD %d  %s",
		sk.Key, sk.Name, sk.Type, power, sk.Cost, sk.Cooldown, sk.Description)
	if card.Cooldown > 0 {
		line += fmt.Sprintf("  (ready in %d)", card.Cooldown)
	}
	return line
}

func (v *view) drawLog(y int) int {
	v.put(panelLeft, y, "LOG", styleTitle)
	y++
	events := v.session.Journal()
	if len(events) > logLines {
		events = events[len(events)-logLines:]
	}
	for _, ev := range events {
		style := styleText
		if ev.Kind == battle.EventRejection {
			style = styleReject
		}
		v.put(panelLeft, y, ev.Text, style)
		y++
	}
	return y
}

func (v *view) drawResult(y int, c battle.Conclusion) {
	v.put(panelLeft, y, " "+v.title.String(c.Title())+" ", styleResult)
	v.put(panelLeft, y+1, c.Summary(), styleText)
	v.put(panelLeft, y+2, "Press [r] to fight again.", styleDim)
}

func (v *view) put(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func bar(ratio float64) string {
	filled := int(ratio*barWidth + 0.5)
	filled = min(max(filled, 0), barWidth)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}
