package ui

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/ytget/yt-audio-downloader/internal/config"
)

// Localization manages UI text translations
type Localization struct {
	bundle          *i18n.Bundle
	localizer       *i18n.Localizer
	currentLanguage string
}

// Text keys for localization
const (
	KeyAppTitle               = "app_title"
	KeyVideoLink              = "video_link"
	KeyURLPlaceholder         = "url_placeholder"
	KeyDestinationFolder      = "destination_folder"
	KeySelect                 = "select"
	KeyProgress               = "progress"
	KeyDownloadAs             = "download_as"
	KeyStatusWaiting          = "status_waiting"
	KeyStatusDownloading      = "status_downloading"
	KeyStatusProcessing       = "status_processing"
	KeyStatusFinished         = "status_finished"
	KeyStatusFailed           = "status_failed"
	KeyItemsCounter           = "items_counter"
	KeyPlaylistItemsCounter   = "playlist_items_counter"
	KeyDarkMode               = "dark_mode"
	KeyLightMode              = "light_mode"
	KeyWarningTitle           = "warning_title"
	KeyErrorTitle             = "error_title"
	KeyPleaseEnterURL         = "please_enter_url"
	KeyPleaseChooseFolder     = "please_choose_folder"
	KeyUnsupportedFormat      = "unsupported_format"
	KeyMissingDependency      = "missing_dependency"
	KeyErrorOccurred          = "error_occurred"
	KeyDownloadCompleteTitle  = "download_complete_title"
	KeyDownloadComplete       = "download_complete"
	KeyOpenFolder             = "open_folder"
	KeyOK                     = "ok"
	KeyFile                   = "file"
	KeyPreferences            = "preferences"
	KeyLanguage               = "language"
	KeyHelp                   = "help"
	KeyAbout                  = "about"
	KeyAboutMessage           = "about_message"
	KeyPreferredFormat        = "preferred_format"
	KeySave                   = "save"
	KeyCancel                 = "cancel"
	KeyBrowse                 = "browse"
	KeyErrorSavingPreferences = "error_saving_preferences"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	bundle := i18n.NewBundle(language.English)
	for lang, texts := range translations {
		tag := language.MustParse(lang)
		for id, text := range texts {
			// AddMessages only fails on an invalid plural form; Other is always valid
			_ = bundle.AddMessages(tag, &i18n.Message{ID: id, Other: text})
		}
	}

	l := &Localization{bundle: bundle}
	l.SetLanguage(config.DefaultLanguage)
	return l
}

// SetLanguage sets the current language. Unsupported codes fall back to English.
func (l *Localization) SetLanguage(lang string) {
	if !config.IsSupportedLanguage(lang) {
		lang = config.DefaultLanguage
	}

	l.currentLanguage = lang
	l.localizer = i18n.NewLocalizer(l.bundle, lang)
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	return l.Format(key, nil)
}

// Format returns localized text for the given key with template data applied
func (l *Localization) Format(key string, data map[string]any) string {
	// A message missing in the current language resolves to the English text
	// together with a not-found error, so only an empty result falls back to the key
	text, _ := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if text == "" {
		return key
	}
	return text
}

// GetCurrentLanguage returns current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns available language codes with display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return config.GetLanguageOptions()
}

var translations = map[string]map[string]string{
	"en": {
		KeyAppTitle:               "YouTube Audio Downloader",
		KeyVideoLink:              "Video Link:",
		KeyURLPlaceholder:         "https://www.youtube.com/watch?v=...",
		KeyDestinationFolder:      "Destination Folder:",
		KeySelect:                 "Select",
		KeyProgress:               "Progress:",
		KeyDownloadAs:             "Download audio as:",
		KeyStatusWaiting:          "Waiting...",
		KeyStatusDownloading:      "Downloading: {{.Percent}}% - Speed: {{.Rate}} KiB/s - Size: {{.Size}} MiB",
		KeyStatusProcessing:       "Converting to {{.Codec}}...",
		KeyStatusFinished:         "Conversion to {{.Codec}} completed",
		KeyStatusFailed:           "Download failed",
		KeyItemsCounter:           "{{.Completed}} of {{.Total}}",
		KeyPlaylistItemsCounter:   "{{.Playlist}}: {{.Completed}} of {{.Total}}",
		KeyDarkMode:               "Dark Mode",
		KeyLightMode:              "Light Mode",
		KeyWarningTitle:           "Warning",
		KeyErrorTitle:             "Error",
		KeyPleaseEnterURL:         "Please enter the video link.",
		KeyPleaseChooseFolder:     "Please choose the destination folder.",
		KeyUnsupportedFormat:      "This audio format is not supported.",
		KeyMissingDependency:      "FFmpeg was not found: {{.Message}}",
		KeyErrorOccurred:          "An error occurred: {{.Message}}",
		KeyDownloadCompleteTitle:  "Download Complete",
		KeyDownloadComplete:       "The audio has been successfully downloaded as {{.Codec}}.",
		KeyOpenFolder:             "Open Folder",
		KeyOK:                     "OK",
		KeyFile:                   "File",
		KeyPreferences:            "Preferences",
		KeyLanguage:               "Language",
		KeyHelp:                   "Help",
		KeyAbout:                  "About",
		KeyAboutMessage:           "{{.Name}} v{{.Version}}\nExtracts audio from online videos with yt-dlp and FFmpeg.",
		KeyPreferredFormat:        "Preferred format:",
		KeySave:                   "Save",
		KeyCancel:                 "Cancel",
		KeyBrowse:                 "Browse...",
		KeyErrorSavingPreferences: "Could not save preferences: {{.Message}}",
	},
	"fr": {
		KeyAppTitle:               "Téléchargeur audio YouTube",
		KeyVideoLink:              "Lien de la vidéo :",
		KeyURLPlaceholder:         "https://www.youtube.com/watch?v=...",
		KeyDestinationFolder:      "Dossier de destination :",
		KeySelect:                 "Choisir",
		KeyProgress:               "Progression :",
		KeyDownloadAs:             "Télécharger l'audio en :",
		KeyStatusWaiting:          "En attente...",
		KeyStatusDownloading:      "Téléchargement : {{.Percent}}% - Vitesse : {{.Rate}} KiB/s - Taille : {{.Size}} MiB",
		KeyStatusProcessing:       "Conversion en {{.Codec}}...",
		KeyStatusFinished:         "Conversion en {{.Codec}} terminée",
		KeyStatusFailed:           "Échec du téléchargement",
		KeyItemsCounter:           "{{.Completed}} sur {{.Total}}",
		KeyPlaylistItemsCounter:   "{{.Playlist}} : {{.Completed}} sur {{.Total}}",
		KeyDarkMode:               "Mode sombre",
		KeyLightMode:              "Mode clair",
		KeyWarningTitle:           "Avertissement",
		KeyErrorTitle:             "Erreur",
		KeyPleaseEnterURL:         "Veuillez saisir le lien de la vidéo.",
		KeyPleaseChooseFolder:     "Veuillez choisir le dossier de destination.",
		KeyUnsupportedFormat:      "Ce format audio n'est pas pris en charge.",
		KeyMissingDependency:      "FFmpeg est introuvable : {{.Message}}",
		KeyErrorOccurred:          "Une erreur s'est produite : {{.Message}}",
		KeyDownloadCompleteTitle:  "Téléchargement terminé",
		KeyDownloadComplete:       "L'audio a été téléchargé avec succès en {{.Codec}}.",
		KeyOpenFolder:             "Ouvrir le dossier",
		KeyOK:                     "OK",
		KeyFile:                   "Fichier",
		KeyPreferences:            "Préférences",
		KeyLanguage:               "Langue",
		KeyHelp:                   "Aide",
		KeyAbout:                  "À propos",
		KeyAboutMessage:           "{{.Name}} v{{.Version}}\nExtrait l'audio des vidéos en ligne avec yt-dlp et FFmpeg.",
		KeyPreferredFormat:        "Format préféré :",
		KeySave:                   "Enregistrer",
		KeyCancel:                 "Annuler",
		KeyBrowse:                 "Parcourir...",
		KeyErrorSavingPreferences: "Impossible d'enregistrer les préférences : {{.Message}}",
	},
	"ru": {
		KeyAppTitle:               "Загрузчик аудио с YouTube",
		KeyVideoLink:              "Ссылка на видео:",
		KeyURLPlaceholder:         "https://www.youtube.com/watch?v=...",
		KeyDestinationFolder:      "Папка назначения:",
		KeySelect:                 "Выбрать",
		KeyProgress:               "Прогресс:",
		KeyDownloadAs:             "Скачать аудио как:",
		KeyStatusWaiting:          "Ожидание...",
		KeyStatusDownloading:      "Загрузка: {{.Percent}}% - Скорость: {{.Rate}} KiB/s - Размер: {{.Size}} MiB",
		KeyStatusProcessing:       "Конвертация в {{.Codec}}...",
		KeyStatusFinished:         "Конвертация в {{.Codec}} завершена",
		KeyStatusFailed:           "Ошибка загрузки",
		KeyItemsCounter:           "{{.Completed}} из {{.Total}}",
		KeyPlaylistItemsCounter:   "{{.Playlist}}: {{.Completed}} из {{.Total}}",
		KeyDarkMode:               "Тёмная тема",
		KeyLightMode:              "Светлая тема",
		KeyWarningTitle:           "Предупреждение",
		KeyErrorTitle:             "Ошибка",
		KeyPleaseEnterURL:         "Пожалуйста, введите ссылку на видео.",
		KeyPleaseChooseFolder:     "Пожалуйста, выберите папку назначения.",
		KeyUnsupportedFormat:      "Этот аудиоформат не поддерживается.",
		KeyMissingDependency:      "FFmpeg не найден: {{.Message}}",
		KeyErrorOccurred:          "Произошла ошибка: {{.Message}}",
		KeyDownloadCompleteTitle:  "Загрузка завершена",
		KeyDownloadComplete:       "Аудио успешно загружено в формате {{.Codec}}.",
		KeyOpenFolder:             "Открыть папку",
		KeyOK:                     "OK",
		KeyFile:                   "Файл",
		KeyPreferences:            "Настройки",
		KeyLanguage:               "Язык",
		KeyHelp:                   "Справка",
		KeyAbout:                  "О программе",
		KeyAboutMessage:           "{{.Name}} v{{.Version}}\nИзвлекает аудио из онлайн-видео с помощью yt-dlp и FFmpeg.",
		KeyPreferredFormat:        "Предпочтительный формат:",
		KeySave:                   "Сохранить",
		KeyCancel:                 "Отмена",
		KeyBrowse:                 "Обзор...",
		KeyErrorSavingPreferences: "Не удалось сохранить настройки: {{.Message}}",
	},
	"pt": {
		KeyAppTitle:               "Baixador de Áudio do YouTube",
		KeyVideoLink:              "Link do vídeo:",
		KeyURLPlaceholder:         "https://www.youtube.com/watch?v=...",
		KeyDestinationFolder:      "Pasta de destino:",
		KeySelect:                 "Selecionar",
		KeyProgress:               "Progresso:",
		KeyDownloadAs:             "Baixar áudio como:",
		KeyStatusWaiting:          "Aguardando...",
		KeyStatusDownloading:      "Baixando: {{.Percent}}% - Velocidade: {{.Rate}} KiB/s - Tamanho: {{.Size}} MiB",
		KeyStatusProcessing:       "Convertendo para {{.Codec}}...",
		KeyStatusFinished:         "Conversão para {{.Codec}} concluída",
		KeyStatusFailed:           "Falha no download",
		KeyItemsCounter:           "{{.Completed}} de {{.Total}}",
		KeyPlaylistItemsCounter:   "{{.Playlist}}: {{.Completed}} de {{.Total}}",
		KeyDarkMode:               "Modo escuro",
		KeyLightMode:              "Modo claro",
		KeyWarningTitle:           "Aviso",
		KeyErrorTitle:             "Erro",
		KeyPleaseEnterURL:         "Por favor, insira o link do vídeo.",
		KeyPleaseChooseFolder:     "Por favor, escolha a pasta de destino.",
		KeyUnsupportedFormat:      "Este formato de áudio não é suportado.",
		KeyMissingDependency:      "FFmpeg não encontrado: {{.Message}}",
		KeyErrorOccurred:          "Ocorreu um erro: {{.Message}}",
		KeyDownloadCompleteTitle:  "Download concluído",
		KeyDownloadComplete:       "O áudio foi baixado com sucesso como {{.Codec}}.",
		KeyOpenFolder:             "Abrir pasta",
		KeyOK:                     "OK",
		KeyFile:                   "Arquivo",
		KeyPreferences:            "Preferências",
		KeyLanguage:               "Idioma",
		KeyHelp:                   "Ajuda",
		KeyAbout:                  "Sobre",
		KeyAboutMessage:           "{{.Name}} v{{.Version}}\nExtrai áudio de vídeos online com yt-dlp e FFmpeg.",
		KeyPreferredFormat:        "Formato preferido:",
		KeySave:                   "Salvar",
		KeyCancel:                 "Cancelar",
		KeyBrowse:                 "Procurar...",
		KeyErrorSavingPreferences: "Não foi possível salvar as preferências: {{.Message}}",
	},
}
