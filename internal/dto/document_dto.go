package dto

type UploadResponse struct {
	Message         string   `json:"message"`
	FilesProcessed  int      `json:"files_processed"`
	ChunksProcessed int      `json:"chunks_processed"`
	Filenames       []string `json:"filenames"`
}

type ClearDocumentsResponse struct {
	Message       string `json:"message"`
	ChunksDeleted int64  `json:"chunks_deleted"`
}

type HealthResponse struct {
	Status            string `json:"status"`
	DatabaseConnected bool   `json:"database_connected"`
	DocumentsLoaded   bool   `json:"documents_loaded"`
}
