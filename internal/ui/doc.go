// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the catalog:
//  1. [BrowseView] : Scroll a catalog feed (now playing, popular, top rated)
//  2. [SearchView] : Debounced title search
//  3. [DetailView] : Full record for a single movie
//  4. [WishlistView] : The signed-in user's collection, with batch refresh
//  5. [LoginView] / [RegisterView] : Local account forms
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Toasts from the notification center render in a footer bar and expire on a timer;
// refresh progress flows through a channel from the task engine.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual
// help displayed via charmbracelet/bubbles/help.
package ui
