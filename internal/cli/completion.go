package cli

import (
	"fmt"
	"io"
)

// BashCompletion is the bash completion script for the salesnipe CLI.
const BashCompletion = `#!/bin/bash
# Bash completion for salesnipe

_salesnipe_completion() {
    local cur prev
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    local commands="register login logout whoami search product history watchlist alerts notifications collections health completion help"

    case "${prev}" in
        watchlist)
            COMPREPLY=( $(compgen -W "add remove stats" -- ${cur}) )
            return 0
            ;;
        alerts)
            COMPREPLY=( $(compgen -W "list create update delete" -- ${cur}) )
            return 0
            ;;
        notifications)
            COMPREPLY=( $(compgen -W "read read-all" -- ${cur}) )
            return 0
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- ${cur}) )
            return 0
            ;;
        *)
            ;;
    esac

    COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
    return 0
}

complete -F _salesnipe_completion salesnipe
`

// ZshCompletion is the zsh completion script for the salesnipe CLI.
const ZshCompletion = `#compdef salesnipe

_salesnipe() {
    local -a commands
    commands=(
        'register:Create an account'
        'login:Sign in'
        'logout:Sign out and forget the stored session'
        'whoami:Show the signed-in user'
        'search:Search products across retailers'
        'product:Show one product with price insights'
        'history:Show a product'\''s price history'
        'watchlist:Show and manage the watchlist'
        'alerts:Manage price alerts'
        'notifications:Show notifications'
        'collections:Browse curated collections'
        'health:Check backend availability'
        'completion:Generate shell completion script'
        'help:Show help'
    )

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi

    case "${words[2]}" in
        watchlist)
            _values 'subcommand' add remove stats
            ;;
        alerts)
            _values 'subcommand' list create update delete
            ;;
        notifications)
            _values 'subcommand' read read-all
            ;;
        completion)
            _values 'shell' bash zsh
            ;;
    esac
}

_salesnipe
`

// WriteCompletion writes the completion script for the named shell.
func WriteCompletion(w io.Writer, shell string) error {
	switch shell {
	case "bash":
		_, err := io.WriteString(w, BashCompletion)
		return err
	case "zsh":
		_, err := io.WriteString(w, ZshCompletion)
		return err
	default:
		return fmt.Errorf("unsupported shell %q (bash and zsh are supported)", shell)
	}
}
