package config

import (
	"os"
	"strconv"
)

const DATABASE_TYPE = "GUIDEFLOW_DATABASE_TYPE"
const DATABASE_URL = "GUIDEFLOW_DATABASE_URL"
const DATABASE_SQLLITE_FILE_NAME = "GUIDEFLOW_DATABASE_SQLLITE_FILE_NAME"
const SERVER_WEB_PORT = "GUIDEFLOW_SERVER_WEB_PORT"
const SESSION_SWEEP_INTERVAL = "GUIDEFLOW_SESSION_SWEEP_INTERVAL"     //how often idle preview sessions are checked
const SESSION_MAX_IDLE_MINUTES = "GUIDEFLOW_SESSION_MAX_IDLE_MINUTES" //preview sessions idle longer than this are dropped
const FLOW_REVISION_KEEP = "GUIDEFLOW_FLOW_REVISION_KEEP"             //number of archived revisions kept per flow

const DATABASE_TYPE_POSTGRES = "POSTGRES"
const DATABASE_TYPE_MYSQL = "MYSQL"
const DATABASE_TYPE_SQLLITE = "SQLLITE"

func GetSystemSettingInteger(settingKey string) int {
	val := GetSystemSettingString(settingKey)
	if val != "" {
		intValue, _ := strconv.Atoi(val)
		return intValue
	}
	return 0
}

func GetSystemSettingString(settingKey string) string {
	val := os.Getenv(settingKey)
	if val != "" {
		return val
	}
	if settingKey == SERVER_WEB_PORT {
		return "8080"
	}
	if settingKey == SESSION_SWEEP_INTERVAL {
		return "60s" // default to 60 seconds
	}
	if settingKey == SESSION_MAX_IDLE_MINUTES {
		return "30" // default to 30 minutes
	}
	if settingKey == FLOW_REVISION_KEEP {
		return "20"
	}
	if settingKey == DATABASE_SQLLITE_FILE_NAME {
		return "./guideflow.db"
	}
	return ""
}
