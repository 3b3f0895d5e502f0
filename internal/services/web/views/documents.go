package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/louisbranch/docstats/internal/services/web/backend"
	"github.com/louisbranch/docstats/internal/services/web/platform/i18n"
	"github.com/louisbranch/docstats/internal/services/web/routepath"
)

// Upload renders the upload form and, after a submission, its result.
func Upload(c i18n.Copy, result *backend.UploadResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := printf(w, `<form method="post" action="%s" enctype="multipart/form-data">`+
			`<label>%s <input type="file" name="files" accept="text/plain" multiple required></label>`+
			`<button type="submit">%s</button></form>`,
			routepath.Root, esc(c.UploadFile), esc(c.UploadSubmit)); err != nil {
			return err
		}
		if result == nil {
			return nil
		}
		if err := printf(w, `<ul class="uploaded">`); err != nil {
			return err
		}
		for _, file := range result.Files {
			if err := printf(w, `<li>%s (%d)</li>`, esc(file.FileName), file.WordCount); err != nil {
				return err
			}
		}
		if err := printf(w, `</ul>`); err != nil {
			return err
		}
		return termTable(c, result.TopWords).Render(ctx, w)
	})
}

// DocumentList renders the user's documents.
func DocumentList(c i18n.Copy, docs []backend.Document) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(docs) == 0 {
			return printf(w, `<p class="empty">%s</p>`, esc(c.Empty))
		}
		if err := printf(w, `<ul class="documents">`); err != nil {
			return err
		}
		for _, doc := range docs {
			id := strconv.FormatInt(doc.ID, 10)
			if err := printf(w, `<li><a href="%s">%s</a> <span>%d</span> <a href="%s">%s</a></li>`,
				esc(routepath.Document(id)), esc(doc.Name), doc.WordCount,
				esc(routepath.DocumentStatistics(id)), esc(c.Statistics)); err != nil {
				return err
			}
		}
		return printf(w, `</ul>`)
	})
}

// Form actions posted to the document and collection detail views.
const (
	ActionDelete = "delete"
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// DocumentDetail renders one document's content.
func DocumentDetail(c i18n.Copy, doc backend.Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := strconv.FormatInt(doc.ID, 10)
		if err := printf(w, `<article><h1>%s</h1><p><a href="%s">%s</a></p>`,
			esc(doc.Name), esc(routepath.DocumentStatistics(id)), esc(c.Statistics)); err != nil {
			return err
		}
		if err := actionForm(routepath.Document(id), ActionDelete, "", c.DeleteDocument).Render(ctx, w); err != nil {
			return err
		}
		if err := collectionLinks(doc.Collections).Render(ctx, w); err != nil {
			return err
		}
		return printf(w, `<pre>%s</pre></article>`, esc(doc.Content))
	})
}

// DocumentStatistics renders one document's TF-IDF table.
func DocumentStatistics(c i18n.Copy, stats backend.DocumentStatistics) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := printf(w, `<h1>%s</h1><p>%d</p>`, esc(stats.Name), stats.WordCount); err != nil {
			return err
		}
		return termTable(c, stats.Terms).Render(ctx, w)
	})
}

// CollectionList renders the user's collections and the create form.
func CollectionList(c i18n.Copy, cols []backend.Collection) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := printf(w, `<form method="post" action="%s">`+
			`<label>%s <input type="text" name="name" maxlength="255" required></label>`+
			`<button type="submit">%s</button></form>`,
			routepath.Collections, esc(c.CollectionName), esc(c.CreateCollection)); err != nil {
			return err
		}
		if len(cols) == 0 {
			return printf(w, `<p class="empty">%s</p>`, esc(c.Empty))
		}
		if err := printf(w, `<ul class="collections">`); err != nil {
			return err
		}
		for _, col := range cols {
			if err := printf(w, `<li><a href="%s">%s</a> <span>%d</span></li>`,
				esc(routepath.Collection(strconv.FormatInt(col.ID, 10))), esc(col.Name), len(col.Documents)); err != nil {
				return err
			}
		}
		return printf(w, `</ul>`)
	})
}

// CollectionDetail renders one collection, its membership forms and, when
// available, its aggregated statistics.
func CollectionDetail(c i18n.Copy, col backend.Collection, stats *backend.CollectionStatistics) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		self := routepath.Collection(strconv.FormatInt(col.ID, 10))
		if err := printf(w, `<h1>%s</h1>`, esc(col.Name)); err != nil {
			return err
		}
		if err := actionForm(self, ActionDelete, "", c.DeleteCollection).Render(ctx, w); err != nil {
			return err
		}
		if err := printf(w, `<form method="post" action="%s">`+
			`<input type="hidden" name="action" value="%s">`+
			`<label>%s <input type="text" name="doc_id" inputmode="numeric" required></label>`+
			`<button type="submit">%s</button></form>`,
			esc(self), ActionAdd, esc(c.DocumentID), esc(c.AddDocument)); err != nil {
			return err
		}
		if len(col.Documents) == 0 {
			return printf(w, `<p class="empty">%s</p>`, esc(c.Empty))
		}
		if err := printf(w, `<ul class="documents">`); err != nil {
			return err
		}
		for _, doc := range col.Documents {
			id := strconv.FormatInt(doc.ID, 10)
			if err := printf(w, `<li><a href="%s">%s</a> <span>%d</span> `,
				esc(routepath.Document(id)), esc(doc.Name), doc.WordCount); err != nil {
				return err
			}
			if err := actionForm(self, ActionRemove, id, c.RemoveDocument).Render(ctx, w); err != nil {
				return err
			}
			if err := printf(w, `</li>`); err != nil {
				return err
			}
		}
		if err := printf(w, `</ul>`); err != nil {
			return err
		}
		if stats == nil {
			return nil
		}
		return collectionTermTable(c, *stats).Render(ctx, w)
	})
}

func actionForm(target, action, docID, label string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := printf(w, `<form method="post" action="%s" class="%s"><input type="hidden" name="action" value="%s">`,
			esc(target), action, action); err != nil {
			return err
		}
		if docID != "" {
			if err := printf(w, `<input type="hidden" name="doc_id" value="%s">`, esc(docID)); err != nil {
				return err
			}
		}
		return printf(w, `<button type="submit">%s</button></form>`, esc(label))
	})
}

func collectionTermTable(c i18n.Copy, stats backend.CollectionStatistics) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := printf(w, `<p class="stats">%s: %d</p>`, esc(c.DocumentsCount), stats.DocumentsCount); err != nil {
			return err
		}
		if len(stats.TopWords) == 0 {
			return nil
		}
		if err := printf(w, `<table class="tfidf"><thead><tr><th>%s</th><th>%s</th><th>%s</th></tr></thead><tbody>`,
			esc(c.Word), esc(c.TotalTF), esc(c.IDF)); err != nil {
			return err
		}
		for _, term := range stats.TopWords {
			if err := printf(w, `<tr><td>%s</td><td>%.6f</td><td>%.6f</td></tr>`, esc(term.Word), term.TotalTF, term.IDF); err != nil {
				return err
			}
		}
		return printf(w, `</tbody></table>`)
	})
}

func collectionLinks(refs []backend.CollectionRef) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(refs) == 0 {
			return nil
		}
		if err := printf(w, `<ul class="tags">`); err != nil {
			return err
		}
		for _, ref := range refs {
			if err := printf(w, `<li><a href="%s">%s</a></li>`,
				esc(routepath.Collection(strconv.FormatInt(ref.ID, 10))), esc(ref.Name)); err != nil {
				return err
			}
		}
		return printf(w, `</ul>`)
	})
}

func termTable(c i18n.Copy, terms []backend.TermWeight) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(terms) == 0 {
			return nil
		}
		if err := printf(w, `<table class="tfidf"><thead><tr><th>%s</th><th>%s</th><th>%s</th></tr></thead><tbody>`,
			esc(c.Word), esc(c.TF), esc(c.IDF)); err != nil {
			return err
		}
		for _, term := range terms {
			if err := printf(w, `<tr><td>%s</td><td>%.6f</td><td>%.6f</td></tr>`, esc(term.Word), term.TF, term.IDF); err != nil {
				return err
			}
		}
		return printf(w, `</tbody></table>`)
	})
}
