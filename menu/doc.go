// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package menu is the interactive terminal front end.

	menu.New(conn, cfg).Run(ctx, os.Stdin, os.Stdout)

Options:

	1) Create scenario
	2) Update scenario (vaccination, lockdown, support, baseline)
	3) Delete scenario
	4) Run inference
	5) View data
	6) Export CSV
	7) Summary statistics
	0) Exit

Blank answers to update prompts keep the current value. Invalid input
prints a message and returns to the menu. Run returns nil at end of input.
*/
package menu
