package pipeline

var (
	DefaultInvoker = "zsh"
	ScriptName     = "basejumper.zsh"
)
