package grid

import "go.uber.org/zap"

// Settings returns the current grid settings
func (r *Renderer) Settings() Settings {
	return Settings{
		Visible:    r.opts.Visible,
		Spacing:    r.opts.Spacing,
		Color:      r.opts.Color,
		Opacity:    r.opts.Opacity,
		AxisColor:  r.opts.AxisColor,
		ShowLabels: r.opts.ShowLabels,
	}
}

// Apply replaces all settings at once and redraws
func (r *Renderer) Apply(s Settings) {
	r.opts.Visible = s.Visible
	r.opts.Spacing = s.Spacing
	r.opts.Color = s.Color
	r.opts.Opacity = s.Opacity
	r.opts.AxisColor = s.AxisColor
	r.opts.ShowLabels = s.ShowLabels
	r.changed()
}

// SetVisible shows or hides the grid. A hidden grid leaves the surface cleared.
func (r *Renderer) SetVisible(visible bool) {
	r.opts.Visible = visible
	r.changed()
}

// SetSpacing sets the minimum distance between lines in pixels
func (r *Renderer) SetSpacing(spacing float64) {
	r.opts.Spacing = spacing
	r.changed()
}

// SetColor sets the line color
func (r *Renderer) SetColor(c string) {
	r.opts.Color = c
	r.changed()
}

// SetAxisColor sets the axis and tick color; an empty color hides them
func (r *Renderer) SetAxisColor(c string) {
	r.opts.AxisColor = c
	r.changed()
}

// SetOpacity sets the line opacity in [0,1]
func (r *Renderer) SetOpacity(opacity float64) {
	r.opts.Opacity = opacity
	r.changed()
}

// SetShowLabels shows or hides the axis labels
func (r *Renderer) SetShowLabels(show bool) {
	r.opts.ShowLabels = show
	r.changed()
}

func (r *Renderer) changed() {
	r.opts = r.opts.normalize()
	settings := r.Settings()
	r.log.Debug("grid settings changed",
		zap.Bool("visible", settings.Visible),
		zap.Float64("spacing", settings.Spacing),
		zap.Bool("labels", settings.ShowLabels),
	)
	r.draw()
	r.OnChange.Emit(settings)
}
