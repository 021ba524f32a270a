package main

import (
	"github.com/spf13/pflag"
)

// bindFlag makes flag override the key of the settings when it is set.
func bindFlag(flag *pflag.Flag, key string) {
	if err := settings.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
