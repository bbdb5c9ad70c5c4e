// Package tui is the terminal presentation layer for cafetable.
//
// TableModel is a Bubble Tea model that shows one page of an engine.Table and
// turns key presses into engine reducer actions. RenderStyledPage renders the
// same page once with Lip Gloss for terminals that cannot run the interactive
// program. DetectOutputMode picks between the two and plain text.
package tui
