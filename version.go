package main

import (
	"fmt"

	"github.com/wcms19/yearbook/internal/config"
	"github.com/wcms19/yearbook/internal/version"
)

// printVersion 输出注入的版本、提交信息以及内置插件的标识。
func printVersion() {
	plugin := config.DefaultPluginConfig()
	fmt.Fprintf(stdOut, "%s plugin=%s/%s\n", version.Full(), plugin.Name, plugin.Version)
}
