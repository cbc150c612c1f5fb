package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/polymap/internal/cpf"
	"github.com/dmitrijs2005/polymap/internal/editor"
	"github.com/dmitrijs2005/polymap/internal/models"
	"github.com/dmitrijs2005/polymap/internal/session"
)

func (a *App) New(_ context.Context) error {
	if !a.editor.StartPolygon() {
		fmt.Fprintf(a.out, "Cannot start a polygon while in %s mode\n", a.editor.State())
		return nil
	}
	fmt.Fprintln(a.out, "Drawing: add points with 'click <lat> <lon>', then 'finish'")
	return nil
}

func (a *App) Click(_ context.Context, args []string) error {
	p, err := parsePoint(args)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: click <lat> <lon>")
		return errUsage
	}
	if !a.editor.AddPoint(p) {
		fmt.Fprintln(a.out, "Not drawing, use 'new' first")
		return nil
	}
	fmt.Fprintf(a.out, "Point %d: %s\n", len(a.editor.Draft()), p)
	return nil
}

func (a *App) Undo(_ context.Context) error {
	if !a.editor.UndoPoint() {
		fmt.Fprintln(a.out, "Nothing to undo")
		return nil
	}
	fmt.Fprintf(a.out, "%d point(s) left\n", len(a.editor.Draft()))
	return nil
}

func (a *App) Cancel(_ context.Context) error {
	if !a.editor.CancelPolygon() {
		fmt.Fprintln(a.out, "Not drawing")
		return nil
	}
	fmt.Fprintln(a.out, "Polygon discarded")
	return nil
}

func (a *App) Finish(ctx context.Context) error {
	if !a.editor.CanFinish() {
		fmt.Fprintf(a.out, "A polygon needs at least %d points\n", models.MinPolygonPoints)
		return nil
	}
	ok, err := a.editor.Finish(ctx)
	if err != nil {
		fmt.Fprintln(a.out, session.Message(err))
		return nil
	}
	if ok {
		polys := a.editor.Polygons()
		fmt.Fprintf(a.out, "Saved %q\n", polys[len(polys)-1].Name)
	}
	return nil
}

// Delete arms or disarms delete mode.
func (a *App) Delete(_ context.Context) error {
	if !a.editor.ToggleDeleteMode() {
		switch {
		case a.editor.Drawing():
			fmt.Fprintln(a.out, "Finish or cancel the polygon first")
		default:
			fmt.Fprintln(a.out, "No polygons to delete")
		}
		return nil
	}
	if a.editor.DeleteArmed() {
		fmt.Fprintln(a.out, "Delete mode: 'select <n>' or 'select at <lat> <lon>' removes a polygon")
	} else {
		fmt.Fprintln(a.out, "Delete mode off")
	}
	return nil
}

// Select removes a polygon by its 1-based list number or by a coordinate
// inside it.
func (a *App) Select(ctx context.Context, args []string) error {
	if !a.editor.DeleteArmed() {
		fmt.Fprintln(a.out, "Use 'delete' to arm delete mode first")
		return nil
	}

	var (
		ok  bool
		err error
	)
	switch {
	case len(args) == 3 && args[0] == "at":
		p, perr := parsePoint(args[1:])
		if perr != nil {
			fmt.Fprintln(a.out, "Usage: select at <lat> <lon>")
			return errUsage
		}
		ok, err = a.editor.SelectAt(ctx, p)
	case len(args) == 1:
		n, perr := strconv.Atoi(args[0])
		if perr != nil {
			fmt.Fprintln(a.out, "Usage: select <n>")
			return errUsage
		}
		ok, err = a.editor.Select(ctx, n-1)
	default:
		fmt.Fprintln(a.out, "Usage: select <n> | select at <lat> <lon>")
		return errUsage
	}

	if err != nil {
		fmt.Fprintln(a.out, session.Message(err))
		return nil
	}
	if !ok {
		fmt.Fprintln(a.out, "No polygon there")
		return nil
	}
	fmt.Fprintf(a.out, "Deleted, %d polygon(s) left\n", len(a.editor.Polygons()))
	return nil
}

func (a *App) List(_ context.Context) error {
	polys := a.editor.Polygons()
	if len(polys) == 0 {
		fmt.Fprintln(a.out, "No polygons yet")
		return nil
	}
	for i, p := range polys {
		fmt.Fprintf(a.out, "%d. %s %s (%d points)\n", i+1, p.Name, p.Color, len(p.Points))
	}
	return nil
}

// Show prints every polygon with its vertices and the draft, drawn dashed,
// once it has more than one point.
func (a *App) Show(_ context.Context) error {
	for i, p := range a.editor.Polygons() {
		fmt.Fprintf(a.out, "%d. %s %s", i+1, p.Name, p.Color)
		if p.ID != "" {
			fmt.Fprintf(a.out, " [%s]", p.ID)
		}
		fmt.Fprintln(a.out)
		for _, pt := range p.Points {
			fmt.Fprintf(a.out, "   %s\n", pt)
		}
	}

	draft := a.editor.Draft()
	if len(draft) > 1 {
		fmt.Fprintln(a.out, "- - draft - -")
		for _, pt := range draft {
			fmt.Fprintf(a.out, " - %s\n", pt)
		}
	} else if len(draft) == 1 {
		fmt.Fprintf(a.out, "draft: %s\n", draft[0])
	}

	if a.editor.State() != editor.Idle {
		fmt.Fprintf(a.out, "mode: %s\n", a.editor.State())
	}
	return nil
}

// CPF prints the masked form of a tax id and whether it is valid.
func (a *App) CPF(_ context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: cpf <value>")
		return errUsage
	}
	verdict := "invalid"
	if cpf.IsValid(args[0]) {
		verdict = "valid"
	}
	fmt.Fprintf(a.out, "%s %s\n", cpf.Format(args[0]), verdict)
	return nil
}

func parsePoint(args []string) (models.Point, error) {
	if len(args) != 2 {
		return models.Point{}, errUsage
	}
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return models.Point{}, err
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return models.Point{}, err
	}
	// written so that NaN fails the check
	if !(lat >= -90 && lat <= 90) || !(lon >= -180 && lon <= 180) {
		return models.Point{}, fmt.Errorf("coordinate out of range")
	}
	return models.Point{Lat: lat, Lon: lon}, nil
}
