// Package viz renders arm simulations in the terminal.
//
//   - [Canvas] draws with braille characters at sub-cell resolution
//   - [Viewport] maps world coordinates onto the canvas
//   - [Model] is a bubbletea program showing a live simulation
//   - [PlotTrajectories] renders joint angle histories as line charts
package viz
