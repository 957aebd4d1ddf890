// meta/meta.go
package meta

// CONFIG_FILE is the configuration file read when no path is given.
const CONFIG_FILE = "draft.toml"

// ENV_PREFIX prefixes every environment override.
const ENV_PREFIX = "DRAFT_"

// DATA_DIR holds champions.json and roles.csv.
const DATA_DIR = "data"

// SERVER_ADDR is where the recommendation server listens.
const SERVER_ADDR = ":8080"

// MAX_EPISODES caps the episodes a single recommendation request may run.
const MAX_EPISODES = 20000

// OUTPUT_DIR receives experiment results.
const OUTPUT_DIR = "experiments"

// WORKERS defines the number of experiment games played at once.
const WORKERS = 8
