package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/nvasani/inspectapi/internal/adapter"
	"github.com/nvasani/inspectapi/internal/adapter/utils"
	"github.com/nvasani/inspectapi/internal/api"
	"github.com/nvasani/inspectapi/internal/config"
	"github.com/nvasani/inspectapi/internal/domain/jobmodel"
	"github.com/nvasani/inspectapi/pkg/logx"
)

var logRH *logx.Logger

// carries everything needed to start a job, regardless of whether the
// source was inline text or an uploaded file
type newJobData struct {
	id           string
	text         string
	traceId      string
	documentName string
	documentPath string
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// ProcessHandler accepts raw document text and runs the full pipeline
// inline, returning the aggregated result. Empty text is rejected
// before any job is created.
func ProcessHandler(w http.ResponseWriter, request *http.Request) {

	if validateContext(request.Context()) {

		var requestData api.ProcessRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Process handler reader :", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || !ValidateProcessRequest(requestData) {

			logRH.Warn("Bad Process Request: ", "error:", err)
			WriteErrorResponse(w, http.StatusBadRequest, requestData.JobId, "document text must not be empty")
			return
		}

		id := requestData.JobId
		if id == "" {
			id = utils.GetNewUUID()
		}
		finished := RunPipeline(request.Context(), newJobData{
			id:      id,
			text:    requestData.Text,
			traceId: request.Context().Value(config.TRACE_ID_KEY).(string),
		})

		code := http.StatusOK
		if finished.Status == jobmodel.JobStatusFailed {
			code = http.StatusInternalServerError
		}
		writeJsonResponse(w, code, adapter.ToAPIResponse(finished))
		return
	}
	logRH.Warn("Invalid Context by request ", request.RemoteAddr)
}

// GetStatusHandler returns the current state of a job by id, including
// per-step progress and, once finished, the full pipeline result.
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

// PostDocumentHandler receives a PDF or DOCX via multipart/form-data,
// stages it in a temp directory and queues a pipeline job for it.
func PostDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		targetDir, errString := getTargetDirectory()

		if errString != "" {
			logRH.Error("Couldn't get target directory :", "err", errString)
			WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
			return
		}

		const maxUploadSize = 32 << 20 //32mb
		err := r.ParseMultipartForm(maxUploadSize)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		docName := r.FormValue("document_name")
		if docName == "" {
			WriteErrorResponse(w, http.StatusBadRequest, "", "document_name is required")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("document")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, docName, "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
		tempFilePath := filepath.Join(targetDir, filename)
		destinationFileWriter, err := os.Create(tempFilePath)
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, docName, "Storage error")
			return
		}
		defer destinationFileWriter.Close()

		if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, docName, "Write error")
			return
		}
		processNewJobData(r, w, filename, tempFilePath)
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}
