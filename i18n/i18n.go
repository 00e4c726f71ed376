// Package i18n holds the English and Portuguese UI strings.
package i18n

import (
	"github.com/qyinm/lumina/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys
const (
	HeroTitle            = "heroTitle"
	HeroHighlight        = "heroHighlight"
	HeroSubtitle         = "heroSubtitle"
	SearchPlaceholder    = "searchPlaceholder"
	Categories           = "categories"
	Favorites            = "favorites"
	Discover             = "discover"
	NoFavorites          = "noFavorites"
	NoWallpapers         = "noWallpapers"
	TryAdjusting         = "tryAdjusting"
	LoadMore             = "loadMore"
	Showing              = "showing"
	ShareTitle           = "shareTitle"
	LinkCopied           = "linkCopied"
	Download             = "download"
	Downloaded           = "downloaded"
	FreeForUse           = "freeForUse"
	AIStudioTitle        = "aiStudioTitle"
	AIStudioDescription  = "aiStudioDescription"
	AIStudioPlaceholder  = "aiStudioPlaceholder"
	AIStudioExperimental = "aiStudioExperimental"
	Generate             = "generate"
	Generating           = "generating"
	Resolution           = "resolution"
	RecentCreations      = "recentCreations"
	NoCreations          = "noCreations"
	KeyRequired          = "keyRequired"
	SelectKey            = "selectKey"
	KeyPlaceholder       = "keyPlaceholder"
	BillingInfo          = "billingInfo"
	ErrInvalidKey        = "errInvalidKey"
	ErrGeneration        = "errGeneration"
	ErrBusy              = "errBusy"
	LanguageName         = "languageName"
)

type entry struct {
	key string
	en  string
	pt  string
}

var messages = []entry{
	{HeroTitle, "Elevate your", "Eleve sua"},
	{HeroHighlight, "Digital Space", "Tela Digital"},
	{HeroSubtitle, "Curated high-resolution wallpapers, or create your own with AI.", "Papéis de parede em alta resolução, ou crie o seu com IA."},
	{SearchPlaceholder, "Search wallpapers, tags...", "Buscar papéis de parede, tags..."},
	{Categories, "Categories", "Categorias"},
	{Favorites, "Favorites", "Favoritos"},
	{Discover, "Discover wallpapers", "Descobrir papéis de parede"},
	{NoFavorites, "No favorites yet", "Nenhum favorito ainda"},
	{NoWallpapers, "No wallpapers found", "Nenhum papel de parede encontrado"},
	{TryAdjusting, "Try adjusting your search or category.", "Tente ajustar sua busca ou categoria."},
	{LoadMore, "Loading more...", "Carregando mais..."},
	{Showing, "%d of %d", "%d de %d"},
	{ShareTitle, "Check out this wallpaper", "Confira este papel de parede"},
	{LinkCopied, "Link copied to clipboard!", "Link copiado!"},
	{Download, "Download", "Baixar"},
	{Downloaded, "Saved to %s", "Salvo em %s"},
	{FreeForUse, "Free for personal use", "Grátis para uso pessoal"},
	{AIStudioTitle, "AI Studio", "Estúdio IA"},
	{AIStudioDescription, "Describe a scene and we will paint it for you.", "Descreva uma cena e nós a pintaremos para você."},
	{AIStudioPlaceholder, "A neon koi pond under a violet sky...", "Um lago de carpas neon sob um céu violeta..."},
	{AIStudioExperimental, "Experimental", "Experimental"},
	{Generate, "Generate", "Gerar"},
	{Generating, "Generating...", "Gerando..."},
	{Resolution, "Resolution", "Resolução"},
	{RecentCreations, "Recent creations", "Criações recentes"},
	{NoCreations, "No creations yet", "Nenhuma criação ainda"},
	{KeyRequired, "An API key is required to generate images.", "Uma chave de API é necessária para gerar imagens."},
	{SelectKey, "Select API key", "Selecionar chave de API"},
	{KeyPlaceholder, "Paste your Gemini API key", "Cole sua chave de API Gemini"},
	{BillingInfo, "High-resolution models need a key from a paid project.", "Modelos de alta resolução exigem uma chave de um projeto pago."},
	{ErrInvalidKey, "Your API key was rejected. Please select another key.", "Sua chave de API foi rejeitada. Selecione outra chave."},
	{ErrGeneration, "Failed to generate image. Please try again.", "Falha ao gerar imagem. Tente novamente."},
	{ErrBusy, "A generation is already running.", "Uma geração já está em andamento."},
	{LanguageName, "English", "Português"},

	{categoryKey(types.All), "All", "Todos"},
	{categoryKey(types.Nature), "Nature", "Natureza"},
	{categoryKey(types.Abstract), "Abstract", "Abstrato"},
	{categoryKey(types.Minimal), "Minimal", "Minimalista"},
	{categoryKey(types.Cyberpunk), "Cyberpunk", "Cyberpunk"},
	{categoryKey(types.Space), "Space", "Espaço"},
	{categoryKey(types.Architecture), "Architecture", "Arquitetura"},
	{categoryKey(types.Animals), "Animals", "Animais"},

	{resolutionKey(types.Res1K), "1K (Standard)", "1K (Padrão)"},
	{resolutionKey(types.Res2K), "2K (High)", "2K (Alta)"},
	{resolutionKey(types.Res4K), "4K (Ultra)", "4K (Ultra)"},
}

var (
	tagEN   = language.English
	tagPT   = language.Portuguese
	matcher = language.NewMatcher([]language.Tag{tagEN, tagPT})
	builder = newBuilder()
)

func newBuilder() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(tagEN))
	for _, m := range messages {
		// SetString only fails on malformed tags
		_ = b.SetString(tagEN, m.key, m.en)
		_ = b.SetString(tagPT, m.key, m.pt)
	}
	return b
}

func categoryKey(c types.Category) string     { return "category." + string(c) }
func resolutionKey(r types.Resolution) string { return "resolution." + string(r) }

// Translator renders messages in one language.
type Translator struct {
	lang    types.Language
	printer *message.Printer
}

// New returns a Translator for lang. Unsupported languages get English.
func New(lang types.Language) *Translator {
	tag, _, _ := matcher.Match(language.Make(string(lang)))
	base, _ := tag.Base()
	resolved := types.English
	if base.String() == "pt" {
		resolved = types.Portuguese
		tag = tagPT
	} else {
		tag = tagEN
	}
	return &Translator{
		lang:    resolved,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}
}

// Language returns the language the Translator renders.
func (t *Translator) Language() types.Language { return t.lang }

// T renders key with optional format arguments. Unknown keys render as
// the key itself.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Category returns the display name of c.
func (t *Translator) Category(c types.Category) string {
	return t.T(categoryKey(c))
}

// Resolution returns the display label of r.
func (t *Translator) Resolution(r types.Resolution) string {
	return t.T(resolutionKey(r))
}

// Keys lists every message key in declaration order.
func Keys() []string {
	keys := make([]string, len(messages))
	for i, m := range messages {
		keys[i] = m.key
	}
	return keys
}
