package site

import (
	"fmt"
	"strings"
	"time"
)

// Section names a page section.
type Section string

const (
	SectionHero      Section = "hero"
	SectionServices  Section = "services"
	SectionPortfolio Section = "portfolio"
	SectionAbout     Section = "about"
	SectionContact   Section = "contact"
	SectionFooter    Section = "footer"
)

// Service is one card of the services grid.
type Service struct {
	Icon        string
	Title       string
	Description string
}

// Project is one entry of the project archive.
type Project struct {
	Title       string
	Description string
	Tags        []string
	Image       string
}

// Stat is one hero counter.
type Stat struct {
	Value  int
	Suffix string
	Label  string
}

// Content is everything the page shows besides the circuit.
type Content struct {
	Brand    string
	Tagline  string
	Nav      []string
	Stats    []Stat
	Services []Service
	Projects []Project
	Bio      []string
	Hashtags string
	Socials  []string
	Now      func() time.Time
}

// DefaultContent returns the 仮想回路 page.
func DefaultContent() Content {
	return Content{
		Brand:   "仮想回路",
		Tagline: "Designing the Future, One Circuit at a Time",
		Nav:     []string{"SERVICES", "PORTFOLIO", "ABOUT", "CONTACT"},
		Stats: []Stat{
			{Value: 42, Label: "Projects Delivered"},
			{Value: 100, Suffix: "K+", Label: "Lines of Code"},
			{Value: 100, Suffix: "%", Label: "Client Satisfaction"},
		},
		Services: []Service{
			{Icon: "✎", Title: "UI/UX デザイン", Description: "ユーザー中心設計に基づき、美しさと機能性を両立したインターフェースを構築します。"},
			{Icon: "</>", Title: "ウェブ開発", Description: "最新の技術スタックを駆使し、高速かつ堅牢なウェブアプリケーションを開発します。"},
			{Icon: "◆", Title: "ブランドアイデンティティ", Description: "企業の核心を捉え、記憶に残る視覚的アイデンティティシステムを創造します。"},
			{Icon: "✉", Title: "テクニカルコンサルティング", Description: "最適な技術選定からアーキテクチャ設計まで、プロジェクトを成功に導きます。"},
		},
		Projects: []Project{
			{Title: "Project: Genesis", Description: "次世代EコマースプラットフォームのUI/UXデザインとフロントエンド開発。", Tags: []string{"Next.js", "TypeScript", "Vercel"}, Image: "https://picsum.photos/seed/genesis/600/400"},
			{Title: "Project: Nova", Description: "AIを活用したデータ可視化ダッシュボード。複雑な情報を直感的に伝えます。", Tags: []string{"React", "D3.js", "AWS"}, Image: "https://picsum.photos/seed/nova/600/400"},
			{Title: "Project: Orion", Description: "クリエイティブエージェンシーのブランドリニューアルと公式サイト制作。", Tags: []string{"Figma", "Webflow", "CMS"}, Image: "https://picsum.photos/seed/orion/600/400"},
		},
		Bio: []string{
			"はじめまして。「仮想回路」の設計者です。",
			"デジタル領域における10年以上の経験を基に、コードとクリエイティビティを融合させ、単なるウェブサイトではなく、記憶に残る体験を創造します。",
			"私の哲学は「目的ある美学」。すべてのピクセル、すべてのアニメーションには意味があり、ビジネス目標達成のための戦略的要素です。",
		},
		Hashtags: "#Innovation #Craftsmanship #Collaboration",
		Socials:  []string{"GitHub", "LinkedIn", "Twitter"},
		Now:      time.Now,
	}
}

// Titles returns the heading and index number of a section.
func Titles(s Section) (title, number string) {
	switch s {
	case SectionServices:
		return "CIRCUIT MODULES", "01"
	case SectionPortfolio:
		return "PROJECT ARCHIVE", "02"
	case SectionAbout:
		return "THE ARCHITECT", "03"
	case SectionContact:
		return "INITIATE CONNECTION", "04"
	}
	return "", ""
}

// FormatStat renders a counter value with the stat's suffix.
func FormatStat(st Stat, value int) string {
	return fmt.Sprintf("%d%s", value, st.Suffix)
}

// Footer is the copyright line.
func (c Content) Footer() string {
	year := time.Now().Year()
	if c.Now != nil {
		year = c.Now().Year()
	}
	return fmt.Sprintf("© %d VIRTUAL CIRCUIT. ALL RIGHTS RESERVED.", year)
}

// Markdown renders one section as markdown. Unknown sections render empty.
func (c Content) Markdown(s Section) string {
	var b strings.Builder
	if title, num := Titles(s); title != "" {
		fmt.Fprintf(&b, "# %s `%s`\n\n", title, num)
	}
	switch s {
	case SectionHero:
		fmt.Fprintf(&b, "# %s\n\n*%s*\n\n", c.Brand, c.Tagline)
		for _, st := range c.Stats {
			fmt.Fprintf(&b, "- **%s** %s\n", FormatStat(st, st.Value), st.Label)
		}
	case SectionServices:
		for _, sv := range c.Services {
			fmt.Fprintf(&b, "## %s %s\n\n%s\n\n", sv.Icon, sv.Title, sv.Description)
		}
	case SectionPortfolio:
		for _, p := range c.Projects {
			fmt.Fprintf(&b, "## %s\n\n%s\n\n", p.Title, p.Description)
			tags := make([]string, len(p.Tags))
			for i, t := range p.Tags {
				tags[i] = "`" + t + "`"
			}
			fmt.Fprintf(&b, "%s\n\n", strings.Join(tags, " "))
		}
	case SectionAbout:
		b.WriteString("```\n> architect.bio\n```\n\n")
		for _, p := range c.Bio {
			fmt.Fprintf(&b, "%s\n\n", p)
		}
		fmt.Fprintf(&b, "*%s*\n\n", c.Hashtags)
	case SectionContact:
		b.WriteString("お名前 / NAME, メールアドレス / EMAIL, メッセージ / MESSAGE\n\n")
		b.WriteString("**回路を繋げる / ESTABLISH CIRCUIT**\n\n")
	case SectionFooter:
		fmt.Fprintf(&b, "**%s**\n\n%s\n\n%s\n", c.Brand, strings.Join(c.Socials, " · "), c.Footer())
	}
	return b.String()
}
