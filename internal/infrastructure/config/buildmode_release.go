//go:build !debug

package config

const compiledBuildMode = BuildModeRelease
