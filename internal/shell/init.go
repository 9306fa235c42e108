package shell

import (
	"fmt"
	"io"
)

// Shells lists the supported init targets.
var Shells = []string{"bash", "zsh"}

// WriteInit writes the integration script for the named shell.
func WriteInit(w io.Writer, shell string) error {
	switch shell {
	case "bash":
		WriteBashInit(w)
	case "zsh":
		WriteZshInit(w)
	default:
		return fmt.Errorf("unsupported shell %q (supported: bash, zsh)", shell)
	}
	return nil
}

// WriteBashInit writes the bash shell integration script to the writer.
func WriteBashInit(w io.Writer) {
	fmt.Fprint(w, `# moodlog shell integration
__moodlog_prompt_hook() {
  eval "$(command moodlog status --env 2>/dev/null)"
}

moodlog_prompt_info() {
  command moodlog status 2>/dev/null
}

if [[ -z "$PROMPT_COMMAND" ]]; then
  PROMPT_COMMAND="__moodlog_prompt_hook"
else
  PROMPT_COMMAND="__moodlog_prompt_hook;${PROMPT_COMMAND}"
fi

eval "$(command moodlog completion bash 2>/dev/null)"
`)
}

// WriteZshInit writes the zsh shell integration script to the writer.
func WriteZshInit(w io.Writer) {
	fmt.Fprint(w, `# moodlog shell integration
__moodlog_prompt_hook() {
  eval "$(command moodlog status --env 2>/dev/null)"
}

moodlog_prompt_info() {
  command moodlog status 2>/dev/null
}

autoload -Uz add-zsh-hook
add-zsh-hook precmd __moodlog_prompt_hook

eval "$(command moodlog completion zsh 2>/dev/null)"
`)
}
