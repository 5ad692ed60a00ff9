// Package viz renders decomposition runs in the terminal.
//
//   - [RenderSummary], [RenderBands], [RenderComponents]: lipgloss styled
//     text for the show command
//   - [Plot]: attractor count over the parameter axis, drawn with asciigraph
//   - [Browser]: Bubble Tea application that lists stored runs and shows one
//
// # Key Bindings
//
//	j/k, up/down - Move through the run list
//	enter        - Open the selected run
//	esc          - Back to the list
//	q            - Quit
package viz
