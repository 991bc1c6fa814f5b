package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	defaultCascadeScaleFactor  = 1.3
	defaultCascadeMinNeighbors = 5
	defaultMaxFrameBytes       = 8 << 20 // 8 MiB per streamed frame
)

type Config struct {
	// database path
	DatabasePath string

	// model asset locations
	ModelsPath       string // directory holding model assets
	EmotionModelPath string // classifier weight artifact
	FaceCascadePath  string // pretrained frontal face cascade

	// face detection tuning
	CascadeScaleFactor  float64
	CascadeMinNeighbors int

	// upload / stream limits
	MaxFrameBytes int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvFloatOrDefault(envVar string, defaultVal float64) float64 {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %g. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "mood.db")

	modelsPath := getEnvOrDefault("MODELS_PATH", "./models")
	absModelsPath, err := filepath.Abs(modelsPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for models directory '%s': %w", modelsPath, err)
	}

	emotionModel := getEnvOrDefault("EMOTION_MODEL_PATH", filepath.Join(absModelsPath, "emotion_model.gob"))
	faceCascade := getEnvOrDefault("FACE_CASCADE_PATH", filepath.Join(absModelsPath, "haarcascade_frontalface_default.xml"))

	cfg := Config{
		DatabasePath:        dbPath,
		ModelsPath:          absModelsPath,
		EmotionModelPath:    emotionModel,
		FaceCascadePath:     faceCascade,
		CascadeScaleFactor:  getEnvFloatOrDefault("CASCADE_SCALE_FACTOR", defaultCascadeScaleFactor),
		CascadeMinNeighbors: getEnvIntOrDefault("CASCADE_MIN_NEIGHBORS", defaultCascadeMinNeighbors),
		MaxFrameBytes:       getEnvIntOrDefault("MAX_FRAME_BYTES", defaultMaxFrameBytes),
	}

	return cfg, nil
}
