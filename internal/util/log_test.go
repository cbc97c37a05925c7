package util

import "testing"

func TestQuietMode(t *testing.T) {
	prev := currentLogLevel
	defer func() { currentLogLevel = prev }()

	currentLogLevel = LevelInfo
	if IsQuiet() {
		t.Fatal("info level must not report quiet")
	}

	SetQuiet(true)
	if !IsQuiet() {
		t.Fatal("SetQuiet(true) must report quiet")
	}

	currentLogLevel = LevelInfo
	SetQuiet(false)
	if IsQuiet() {
		t.Fatal("SetQuiet(false) must leave the level unchanged")
	}
}

func TestSetVerbose(t *testing.T) {
	prev := currentLogLevel
	defer func() { currentLogLevel = prev }()

	currentLogLevel = LevelInfo
	SetVerbose(true)
	if currentLogLevel != LevelDebug {
		t.Errorf("SetVerbose(true) level = %v, want %v", currentLogLevel, LevelDebug)
	}

	currentLogLevel = LevelInfo
	SetVerbose(false)
	if currentLogLevel != LevelInfo {
		t.Errorf("SetVerbose(false) level = %v, want %v", currentLogLevel, LevelInfo)
	}
}
