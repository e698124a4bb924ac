package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyAppSubtitle       = "app_subtitle"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyDownloadDirectory = "download_directory"
	KeyImageEndpoint     = "image_endpoint"
	KeyVideoEndpoint     = "video_endpoint"
	KeyRequestTimeout    = "request_timeout"
	KeyAutoDownload      = "auto_download"
	KeyAutoReveal        = "auto_reveal"
	KeyInvalidTimeout    = "invalid_timeout"

	KeyKindImage     = "kind_image"
	KeyKindVideo     = "kind_video"
	KeyDescribeImage = "describe_image"
	KeyDescribeVideo = "describe_video"
	KeyPromptHint    = "prompt_hint"
	KeyTemplates     = "templates"
	KeyGenerate      = "generate"
	KeyGenerating    = "generating"
	KeyStop          = "stop"

	KeyTabGenerator     = "tab_generator"
	KeyTabGallery       = "tab_gallery"
	KeyTabHistory       = "tab_history"
	KeyGalleryEmpty     = "gallery_empty"
	KeyGalleryEmptyHint = "gallery_empty_hint"
	KeyHistoryEmpty     = "history_empty"
	KeyHistoryEmptyHint = "history_empty_hint"

	KeyDownload         = "download"
	KeyOpen             = "open"
	KeyReveal           = "reveal"
	KeyReuse            = "reuse"
	KeyCopyURL          = "copy_url"
	KeyURLCopied        = "url_copied"
	KeyErrorOpeningFile = "error_opening_file"

	KeyPromptMissingTitle   = "prompt_missing_title"
	KeyPromptMissingImage   = "prompt_missing_image"
	KeyPromptMissingVideo   = "prompt_missing_video"
	KeyDoneTitle            = "done_title"
	KeyImageCreated         = "image_created"
	KeyVideoCreated         = "video_created"
	KeyErrorTitle           = "error_title"
	KeyImageFailed          = "image_failed"
	KeyVideoFailed          = "video_failed"
	KeyTimedOut             = "timed_out"
	KeyCancelledTitle       = "cancelled_title"
	KeyCancelledDescription = "cancelled_description"
	KeyTemplateTitle        = "template_title"
	KeyTemplateDescription  = "template_description"
	KeyDownloadedTitle      = "downloaded_title"
	KeyDownloadedDesc       = "downloaded_description"
	KeyDownloadFailedDesc   = "download_failed_description"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "AI Generator",
		KeyAppSubtitle:       "Create content with AI",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyDownloadDirectory: "Download Directory",
		KeyImageEndpoint:     "Image Endpoint",
		KeyVideoEndpoint:     "Video Endpoint",
		KeyRequestTimeout:    "Request Timeout (seconds)",
		KeyAutoDownload:      "Save generated files automatically",
		KeyAutoReveal:        "Reveal saved files",
		KeyInvalidTimeout:    "Timeout must be a number of seconds",

		KeyKindImage:     "Image",
		KeyKindVideo:     "Video",
		KeyDescribeImage: "Describe the image",
		KeyDescribeVideo: "Describe the video",
		KeyPromptHint:    "For example: a cosmic landscape with planets and nebulae",
		KeyTemplates:     "Templates",
		KeyGenerate:      "Generate",
		KeyGenerating:    "Generating...",
		KeyStop:          "Stop",

		KeyTabGenerator:     "Generator",
		KeyTabGallery:       "Gallery",
		KeyTabHistory:       "History",
		KeyGalleryEmpty:     "Gallery is empty",
		KeyGalleryEmptyHint: "Create your first content to see it here",
		KeyHistoryEmpty:     "History is empty",
		KeyHistoryEmptyHint: "All your requests will appear here",

		KeyDownload:         "Download",
		KeyOpen:             "Open",
		KeyReveal:           "Reveal",
		KeyReuse:            "Repeat",
		KeyCopyURL:          "Copy URL",
		KeyURLCopied:        "URL copied to clipboard",
		KeyErrorOpeningFile: "Error opening file",

		KeyPromptMissingTitle:   "Enter a prompt",
		KeyPromptMissingImage:   "Describe the image you want to create",
		KeyPromptMissingVideo:   "Describe the video you want to create",
		KeyDoneTitle:            "Done!",
		KeyImageCreated:         "Image created successfully",
		KeyVideoCreated:         "Video created successfully",
		KeyErrorTitle:           "Error",
		KeyImageFailed:          "Could not create the image. Please try again.",
		KeyVideoFailed:          "Could not create the video. Please try again.",
		KeyTimedOut:             "The service did not answer in time. Please try again.",
		KeyCancelledTitle:       "Cancelled",
		KeyCancelledDescription: "Generation was stopped",
		KeyTemplateTitle:        "Prompt added",
		KeyTemplateDescription:  "You can edit it and start the generation",
		KeyDownloadedTitle:      "Downloaded",
		KeyDownloadedDesc:       "File saved successfully",
		KeyDownloadFailedDesc:   "Could not download the file",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "AI Generator",
		KeyAppSubtitle:       "Создавайте контент с помощью AI",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyDownloadDirectory: "Папка загрузки",
		KeyImageEndpoint:     "Адрес генерации изображений",
		KeyVideoEndpoint:     "Адрес генерации видео",
		KeyRequestTimeout:    "Таймаут запроса (секунды)",
		KeyAutoDownload:      "Сохранять результаты автоматически",
		KeyAutoReveal:        "Показывать сохранённые файлы",
		KeyInvalidTimeout:    "Таймаут должен быть числом секунд",

		KeyKindImage:     "Изображение",
		KeyKindVideo:     "Видео",
		KeyDescribeImage: "Опишите изображение",
		KeyDescribeVideo: "Опишите видео",
		KeyPromptHint:    "Например: космический пейзаж с планетами и туманностями",
		KeyTemplates:     "Шаблоны",
		KeyGenerate:      "Создать",
		KeyGenerating:    "Генерация...",
		KeyStop:          "Стоп",

		KeyTabGenerator:     "Генератор",
		KeyTabGallery:       "Галерея",
		KeyTabHistory:       "История",
		KeyGalleryEmpty:     "Галерея пуста",
		KeyGalleryEmptyHint: "Создайте первый контент чтобы увидеть его здесь",
		KeyHistoryEmpty:     "История пуста",
		KeyHistoryEmptyHint: "Здесь будут отображаться все ваши запросы",

		KeyDownload:         "Скачать",
		KeyOpen:             "Открыть",
		KeyReveal:           "Показать",
		KeyReuse:            "Повторить",
		KeyCopyURL:          "Копировать ссылку",
		KeyURLCopied:        "Ссылка скопирована",
		KeyErrorOpeningFile: "Ошибка открытия файла",

		KeyPromptMissingTitle:   "Введите промпт",
		KeyPromptMissingImage:   "Опишите изображение которое хотите создать",
		KeyPromptMissingVideo:   "Опишите видео которое хотите создать",
		KeyDoneTitle:            "Готово!",
		KeyImageCreated:         "Изображение успешно создано",
		KeyVideoCreated:         "Видео успешно создано",
		KeyErrorTitle:           "Ошибка",
		KeyImageFailed:          "Не удалось создать изображение. Попробуйте ещё раз.",
		KeyVideoFailed:          "Не удалось создать видео. Попробуйте ещё раз.",
		KeyTimedOut:             "Сервис не ответил вовремя. Попробуйте ещё раз.",
		KeyCancelledTitle:       "Отменено",
		KeyCancelledDescription: "Генерация остановлена",
		KeyTemplateTitle:        "Промпт добавлен",
		KeyTemplateDescription:  "Можете отредактировать и запустить генерацию",
		KeyDownloadedTitle:      "Скачано",
		KeyDownloadedDesc:       "Файл успешно сохранен",
		KeyDownloadFailedDesc:   "Не удалось скачать файл",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "AI Generator",
		KeyAppSubtitle:       "Crie conteúdo com IA",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyDownloadDirectory: "Diretório de Download",
		KeyImageEndpoint:     "Endpoint de Imagem",
		KeyVideoEndpoint:     "Endpoint de Vídeo",
		KeyRequestTimeout:    "Tempo Limite (segundos)",
		KeyAutoDownload:      "Salvar arquivos gerados automaticamente",
		KeyAutoReveal:        "Mostrar arquivos salvos",
		KeyInvalidTimeout:    "O tempo limite deve ser um número de segundos",

		KeyKindImage:     "Imagem",
		KeyKindVideo:     "Vídeo",
		KeyDescribeImage: "Descreva a imagem",
		KeyDescribeVideo: "Descreva o vídeo",
		KeyPromptHint:    "Por exemplo: uma paisagem cósmica com planetas e nebulosas",
		KeyTemplates:     "Modelos",
		KeyGenerate:      "Gerar",
		KeyGenerating:    "Gerando...",
		KeyStop:          "Parar",

		KeyTabGenerator:     "Gerador",
		KeyTabGallery:       "Galeria",
		KeyTabHistory:       "Histórico",
		KeyGalleryEmpty:     "A galeria está vazia",
		KeyGalleryEmptyHint: "Crie seu primeiro conteúdo para vê-lo aqui",
		KeyHistoryEmpty:     "O histórico está vazio",
		KeyHistoryEmptyHint: "Todas as suas solicitações aparecerão aqui",

		KeyDownload:         "Baixar",
		KeyOpen:             "Abrir",
		KeyReveal:           "Mostrar",
		KeyReuse:            "Repetir",
		KeyCopyURL:          "Copiar URL",
		KeyURLCopied:        "URL copiada",
		KeyErrorOpeningFile: "Erro ao abrir arquivo",

		KeyPromptMissingTitle:   "Digite um prompt",
		KeyPromptMissingImage:   "Descreva a imagem que deseja criar",
		KeyPromptMissingVideo:   "Descreva o vídeo que deseja criar",
		KeyDoneTitle:            "Pronto!",
		KeyImageCreated:         "Imagem criada com sucesso",
		KeyVideoCreated:         "Vídeo criado com sucesso",
		KeyErrorTitle:           "Erro",
		KeyImageFailed:          "Não foi possível criar a imagem. Tente novamente.",
		KeyVideoFailed:          "Não foi possível criar o vídeo. Tente novamente.",
		KeyTimedOut:             "O serviço não respondeu a tempo. Tente novamente.",
		KeyCancelledTitle:       "Cancelado",
		KeyCancelledDescription: "A geração foi interrompida",
		KeyTemplateTitle:        "Prompt adicionado",
		KeyTemplateDescription:  "Você pode editá-lo e iniciar a geração",
		KeyDownloadedTitle:      "Baixado",
		KeyDownloadedDesc:       "Arquivo salvo com sucesso",
		KeyDownloadFailedDesc:   "Não foi possível baixar o arquivo",
	}
}
