package catalog

import "github.com/voiceflow/voiceflowd/internal/domain"

const hfHost = "https://huggingface.co"

func hf(repo string) string {
	return hfHost + "/" + repo + "/resolve/main"
}

func defaultAssets() []domain.Asset {
	return []domain.Asset{
		// Single-file GGUF language models used for transcript formatting.
		{
			ID:           "qwen3-1.7b",
			Family:       domain.FamilyLLM,
			DisplayName:  "Qwen3 1.7B",
			SizeEstimate: 1_100_000_000,
			Filename:     "Qwen3-1.7B-Q4_K_M.gguf",
			RemoteBase:   hf("unsloth/Qwen3-1.7B-GGUF"),
		},
		{
			ID:           "qwen3-4b",
			Family:       domain.FamilyLLM,
			DisplayName:  "Qwen3 4B",
			SizeEstimate: 2_500_000_000,
			Filename:     "Qwen3-4B-Q4_K_M.gguf",
			RemoteBase:   hf("unsloth/Qwen3-4B-GGUF"),
		},
		{
			ID:           "smollm3-3b",
			Family:       domain.FamilyLLM,
			DisplayName:  "SmolLM3 3B",
			SizeEstimate: 1_900_000_000,
			Filename:     "SmolLM3-Q4_K_M.gguf",
			RemoteBase:   hf("ggml-org/SmolLM3-3B-GGUF"),
		},
		{
			ID:           "gemma2-2b",
			Family:       domain.FamilyLLM,
			DisplayName:  "Gemma 2 2B",
			SizeEstimate: 1_700_000_000,
			Filename:     "gemma-2-2b-it-Q4_K_M.gguf",
			RemoteBase:   hf("bartowski/gemma-2-2b-it-GGUF"),
		},
		{
			ID:           "phi-2",
			Family:       domain.FamilyLLM,
			DisplayName:  "Phi-2",
			SizeEstimate: 1_800_000_000,
			Filename:     "phi-2.Q4_K_M.gguf",
			RemoteBase:   hf("TheBloke/phi-2-GGUF"),
		},

		// Moonshine speech models: a directory of ONNX graphs plus
		// tokenizer. Manifest order matters; files download in sequence.
		{
			ID:            "moonshine-tiny",
			Family:        domain.FamilyMoonshine,
			DisplayName:   "Moonshine Tiny",
			SizeEstimate:  125_000_000,
			DirectoryName: "moonshine-tiny",
			RequiredFiles: []string{
				"preprocess.onnx",
				"encode.onnx",
				"uncached_decode.onnx",
				"cached_decode.onnx",
				"tokenizer.json",
			},
			RemoteBase: hf("UsefulSensors/moonshine") + "/onnx/tiny",
		},
		{
			ID:            "moonshine-base",
			Family:        domain.FamilyMoonshine,
			DisplayName:   "Moonshine Base",
			SizeEstimate:  290_000_000,
			DirectoryName: "moonshine-base",
			RequiredFiles: []string{
				"preprocess.onnx",
				"encode.onnx",
				"uncached_decode.onnx",
				"cached_decode.onnx",
				"tokenizer.json",
			},
			RemoteBase: hf("UsefulSensors/moonshine") + "/onnx/base",
		},

		// Consolidated-weights speech models, served through the optional
		// interpreter runtime.
		{
			ID:            "whisper-large-v3-turbo",
			Family:        domain.FamilyConsolidated,
			DisplayName:   "Whisper Large v3 Turbo",
			SizeEstimate:  1_620_000_000,
			DirectoryName: "whisper-large-v3-turbo",
			RequiredFiles: []string{
				"config.json",
				"generation_config.json",
				"tokenizer.json",
				"model.safetensors",
			},
			RemoteBase: hf("openai/whisper-large-v3-turbo"),
		},
	}
}

func defaultProfiles() []domain.Profile {
	return []domain.Profile{
		{
			ID:          "lightweight",
			DisplayName: "Lightweight",
			SttAssetID:  "moonshine-tiny",
			LlmAssetID:  "qwen3-1.7b",
			MinRamGB:    8,
		},
		{
			ID:          "balanced",
			DisplayName: "Balanced",
			SttAssetID:  "moonshine-base",
			LlmAssetID:  "qwen3-4b",
			MinRamGB:    16,
		},
		{
			ID:                      "accuracy",
			DisplayName:             "Max Accuracy",
			SttAssetID:              "whisper-large-v3-turbo",
			LlmAssetID:              "qwen3-4b",
			RequiresOptionalRuntime: true,
			MinRamGB:                32,
		},
	}
}
