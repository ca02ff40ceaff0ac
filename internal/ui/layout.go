package ui

import "time"

// chromeLines counts the header, slot bar, command bar and status line.
const chromeLines = 4

// LogTailLines is how many log lines the log overlay loads.
const LogTailLines = 500

// DefaultShuffleInterval is the frame interval when none is configured.
const DefaultShuffleInterval = 70 * time.Millisecond
