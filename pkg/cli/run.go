// Zaparoo WebApps
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo WebApps.
//
// Zaparoo WebApps is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo WebApps is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo WebApps.  If not, see <http://www.gnu.org/licenses/>.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/ZaparooProject/zaparoo-webapps/pkg/browsers"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/resolver"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/service"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/store"
	"github.com/ZaparooProject/zaparoo-webapps/pkg/webapp"
	"github.com/rs/zerolog/log"
)

var ErrImportFailed = errors.New("some rows could not be imported")

// Actions are the operations the flags drive, implemented by
// service.Service.
type Actions interface {
	Install(ctx context.Context, req *service.InstallRequest) (*service.InstallResult, error)
	Update(ctx context.Context, id string, ch *webapp.Changes) (*webapp.Descriptor, error)
	RefreshIcon(ctx context.Context, id string) (*webapp.Descriptor, error)
	Remove(ctx context.Context, id string) error
	Launch(ctx context.Context, id string) error
	Reconcile(ctx context.Context) (*store.ReconcileReport, error)
	Import(ctx context.Context, r io.Reader) (*service.ImportReport, error)
	Export(w io.Writer) error
	List() ([]webapp.Descriptor, error)
	Browsers() []browsers.Browser
	Probe(ctx context.Context, rawURL string) (*resolver.Discovery, error)
}

// Action reports whether any action flag was passed.
func (f *Flags) Action() bool {
	for _, name := range []string{
		"install", "list", "remove", "rename", "set-url", "set-browser",
		"refresh-icon", "reconcile", "browsers", "probe", "import", "export",
		"launch",
	} {
		if f.isFlagPassed(name) {
			return true
		}
	}
	return false
}

func required(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s flag requires a value", ErrMissingValue, name)
	}
	return nil
}

// Run actions the first action flag passed, writing results to out.
//
//nolint:gocyclo // flat switch over flags
func (f *Flags) Run(ctx context.Context, a Actions, out io.Writer) error {
	switch {
	case f.isFlagPassed("install"):
		if err := required("install", *f.Install); err != nil {
			return err
		}
		res, err := a.Install(ctx, &service.InstallRequest{
			URL:              *f.Install,
			Name:             *f.Name,
			Browser:          *f.Browser,
			Category:         *f.Category,
			CustomParameters: *f.Params,
			Icon:             *f.Icon,
			Isolated:         *f.Isolated,
			Navbar:           *f.Navbar,
			PrivateWindow:    *f.Private,
		})
		if err != nil {
			return fmt.Errorf("error installing: %w", err)
		}
		for _, w := range res.Warnings {
			_, _ = fmt.Fprintf(out, "Warning: %v\n", w)
		}
		_, _ = fmt.Fprintf(out, "Installed %s (%s)\n", res.App.Name, res.App.ID)
	case *f.List:
		return f.list(a, out)
	case f.isFlagPassed("remove"):
		if err := required("remove", *f.Remove); err != nil {
			return err
		}
		if err := a.Remove(ctx, *f.Remove); err != nil {
			return fmt.Errorf("error removing: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Removed %s\n", *f.Remove)
	case f.isFlagPassed("rename"):
		if err := required("rename", *f.Rename); err != nil {
			return err
		}
		if err := required("name", *f.Name); err != nil {
			return err
		}
		return f.update(ctx, a, out, *f.Rename, &webapp.Changes{Name: f.Name})
	case f.isFlagPassed("set-url"):
		if err := required("set-url", *f.SetURL); err != nil {
			return err
		}
		u := f.fs.Arg(0)
		if err := required("set-url URL", u); err != nil {
			return err
		}
		return f.update(ctx, a, out, *f.SetURL, &webapp.Changes{URL: &u})
	case f.isFlagPassed("set-browser"):
		if err := required("set-browser", *f.SetBrowser); err != nil {
			return err
		}
		if err := required("browser", *f.Browser); err != nil {
			return err
		}
		return f.update(ctx, a, out, *f.SetBrowser, &webapp.Changes{Browser: f.Browser})
	case f.isFlagPassed("refresh-icon"):
		if err := required("refresh-icon", *f.RefreshIcon); err != nil {
			return err
		}
		d, err := a.RefreshIcon(ctx, *f.RefreshIcon)
		if err != nil {
			return fmt.Errorf("error refreshing icon: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Refreshed icon of %s\n", d.Name)
	case *f.Reconcile:
		report, err := a.Reconcile(ctx)
		if err != nil {
			return fmt.Errorf("error reconciling: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Removed %d orphaned files, %d temp files, finished %d removals\n",
			len(report.Orphans), len(report.TempFiles), len(report.Finished))
	case *f.Browsers:
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "ID\tNAME\tKIND\tEXEC")
		for _, b := range a.Browsers() {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, b.Name, b.Kind, b.Exec)
		}
		return tw.Flush() //nolint:wrapcheck // plain writer error
	case f.isFlagPassed("probe"):
		if err := required("probe", *f.Probe); err != nil {
			return err
		}
		d, err := a.Probe(ctx, *f.Probe)
		if err != nil {
			return fmt.Errorf("error probing: %w", err)
		}
		printDiscovery(out, d)
	case f.isFlagPassed("import"):
		if err := required("import", *f.Import); err != nil {
			return err
		}
		return f.importFile(ctx, a, out, *f.Import)
	case f.isFlagPassed("export"):
		if err := required("export", *f.Export); err != nil {
			return err
		}
		return exportFile(a, out, *f.Export)
	case f.isFlagPassed("launch"):
		if err := required("launch", *f.Launch); err != nil {
			return err
		}
		if err := a.Launch(ctx, *f.Launch); err != nil {
			return fmt.Errorf("error launching: %w", err)
		}
	}
	return nil
}

func (*Flags) update(ctx context.Context, a Actions, out io.Writer, id string, ch *webapp.Changes) error {
	d, err := a.Update(ctx, id, ch)
	if err != nil {
		return fmt.Errorf("error updating: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Updated %s (%s)\n", d.Name, d.ID)
	return nil
}

type listItem struct {
	CreatedAt     time.Time `json:"createdAt"`
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	Browser       string    `json:"browser"`
	Category      string    `json:"category"`
	Icon          string    `json:"icon"`
	AccentColor   string    `json:"accentColor,omitempty"`
	Isolated      bool      `json:"isolated"`
	Navbar        bool      `json:"navbar"`
	PrivateWindow bool      `json:"privateWindow"`
}

func (f *Flags) list(a Actions, out io.Writer) error {
	apps, err := a.List()
	if err != nil {
		return fmt.Errorf("error listing: %w", err)
	}

	if *f.JSON {
		items := make([]listItem, 0, len(apps))
		for i := range apps {
			d := &apps[i]
			items = append(items, listItem{
				ID:            d.ID,
				Name:          d.Name,
				URL:           d.URL,
				Browser:       d.Browser,
				Category:      d.Category,
				Icon:          d.IconPath,
				AccentColor:   d.AccentColor,
				Isolated:      d.Isolated,
				Navbar:        d.Navbar,
				PrivateWindow: d.PrivateWindow,
				CreatedAt:     d.CreatedAt,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("error encoding list: %w", err)
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tURL\tBROWSER")
	for i := range apps {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", apps[i].ID, apps[i].Name, apps[i].URL, apps[i].Browser)
	}
	return tw.Flush() //nolint:wrapcheck // plain writer error
}

func printDiscovery(out io.Writer, d *resolver.Discovery) {
	m := d.Metadata
	_, _ = fmt.Fprintf(out, "URL:    %s\n", m.URL)
	_, _ = fmt.Fprintf(out, "Name:   %s\n", m.Name)
	if m.AccentColor != "" {
		_, _ = fmt.Fprintf(out, "Color:  %s\n", m.AccentColor)
	}
	if d.ProbeErr != nil {
		_, _ = fmt.Fprintf(out, "Warning: %v\n", d.ProbeErr)
	}
	_, _ = fmt.Fprintln(out, "Icons:")
	for _, c := range d.Candidates {
		size := "?"
		switch {
		case c.Any:
			size = "any"
		case c.Size > 0:
			size = fmt.Sprintf("%dpx", c.Size)
		}
		_, _ = fmt.Fprintf(out, "  [%s] %s %s\n", c.Source, size, c.URL)
	}
}

func (*Flags) importFile(ctx context.Context, a Actions, out io.Writer, path string) error {
	//nolint:gosec // user supplied import file
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening import file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing import file")
		}
	}()

	report, err := a.Import(ctx, file)
	if err != nil && report == nil {
		return fmt.Errorf("error importing: %w", err)
	}
	for _, d := range report.Installed {
		_, _ = fmt.Fprintf(out, "Installed %s (%s)\n", d.Name, d.ID)
	}
	for _, rowErr := range report.Failed {
		_, _ = fmt.Fprintf(out, "Failed %v\n", rowErr)
	}
	if err != nil {
		return fmt.Errorf("error importing: %w", err)
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrImportFailed,
			len(report.Failed), len(report.Failed)+len(report.Installed))
	}
	return nil
}

func exportFile(a Actions, out io.Writer, path string) error {
	if path == "-" {
		return a.Export(out) //nolint:wrapcheck // already wrapped by the service
	}

	//nolint:gosec // user supplied export file
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating export file: %w", err)
	}
	if err := a.Export(file); err != nil {
		_ = file.Close()
		return err //nolint:wrapcheck // already wrapped by the service
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error writing export file: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Exported to %s\n", path)
	return nil
}
