package config

const configTemplate = `# timerctl configuration file

# Default run length (Go duration, e.g. 25m, 90s). Leave unset to count up forever.
# duration: 25m

# How often the display refreshes
interval: 100ms

# Display settings
display:
  # readable (H:MM:SS) or ms
  format: readable

# Observability settings
log_level: info  # debug, info, warn, error
`
