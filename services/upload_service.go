// services/upload_service.go
package services

import (
	"context"
	"mime/multipart"
	"strings"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// UploadServiceError özel servis hataları
type UploadServiceError string

func (e UploadServiceError) Error() string { return string(e) }

const (
	ErrUploadNotConfigured UploadServiceError = "dosya yükleme servisi yapılandırılmamış"
	ErrUploadFileMissing   UploadServiceError = "yüklenecek dosya bulunamadı"
	ErrUploadFileTooLarge  UploadServiceError = "dosya boyutu 10 MB sınırını aşıyor"
	ErrUploadInvalidType   UploadServiceError = "sadece görsel dosyaları yüklenebilir"
	ErrUploadFailed        UploadServiceError = "dosya yüklenemedi"
)

const (
	uploadMaxSize       = 10 << 20 // 10 MB
	uploadDefaultFolder = "kartvizit"
)

// IUploadService kart görsellerini dış depolamaya yükler.
type IUploadService interface {
	UploadImage(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error)
}

// UploadService IUploadService'in Cloudinary implementasyonu.
type UploadService struct {
	cld *cloudinary.Cloudinary
}

// NewUploadService Cloudinary client'ını ortam değişkenlerinden kurar.
// Değişkenler eksikse servis yine oluşturulur; her çağrı
// ErrUploadNotConfigured döner.
func NewUploadService() IUploadService {
	cloudName := configs.GetEnv("CLOUDINARY_CLOUD_NAME", "")
	apiKey := configs.GetEnv("CLOUDINARY_API_KEY", "")
	apiSecret := configs.GetEnv("CLOUDINARY_API_SECRET", "")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		configslog.SLog.Warn("Cloudinary ortam değişkenleri eksik, dosya yükleme devre dışı")
		return &UploadService{}
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		configslog.Log.Error("Cloudinary client oluşturulamadı", zap.Error(err))
		return &UploadService{}
	}
	return &UploadService{cld: cld}
}

// UploadImage form dosyasını doğrulayıp Cloudinary'ye yükler ve kalıcı
// HTTPS adresini döner.
func (s *UploadService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error) {
	if s.cld == nil {
		return "", ErrUploadNotConfigured
	}
	if fileHeader == nil {
		return "", ErrUploadFileMissing
	}
	if fileHeader.Size > uploadMaxSize {
		return "", ErrUploadFileTooLarge
	}
	if contentType := fileHeader.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "image/") {
		return "", ErrUploadInvalidType
	}
	if folder == "" {
		folder = uploadDefaultFolder
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", ErrUploadFailed
	}
	defer file.Close()

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		configslog.Log.Error("Cloudinary yüklemesi başarısız", zap.String("file", fileHeader.Filename), zap.Error(err))
		return "", ErrUploadFailed
	}
	configslog.SLog.Infof("Dosya yüklendi: %s -> %s", fileHeader.Filename, result.SecureURL)
	return result.SecureURL, nil
}

var _ IUploadService = (*UploadService)(nil)
