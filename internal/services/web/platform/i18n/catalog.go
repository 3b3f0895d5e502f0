package i18n

import "golang.org/x/text/message"

var portugueseMessages = map[string]string{
	"title.register":            "Criar conta",
	"title.verify_email":        "Verificar email",
	"title.login":               "Entrar",
	"title.upload":              "Enviar",
	"title.documents":           "Documentos",
	"title.document":            "Documento",
	"title.document_statistics": "Estatísticas do documento",
	"title.collections":         "Coleções",
	"title.collection":          "Coleção",
	"title.profile":             "Perfil",
	"nav.documents":             "Documentos",
	"nav.collections":           "Coleções",
	"nav.upload":                "Enviar",
	"nav.profile":               "Perfil",
	"nav.sign_out":              "Sair",
	"form.email":                "Email",
	"form.username":             "Usuário",
	"form.password":             "Senha",
	"form.password2":            "Repita a senha",
	"form.first_name":           "Nome",
	"form.last_name":            "Sobrenome",
	"form.code":                 "Código de verificação",
	"form.sign_in":              "Entrar",
	"form.create_account":       "Criar conta",
	"form.verify":               "Verificar",
	"form.upload_file":          "Arquivo de texto",
	"form.upload_submit":        "Analisar",
	"login.no_account":          "Ainda não tem conta?",
	"register.have_account":     "Já tem cadastro?",
	"list.empty":                "Nada por aqui ainda.",
	"document.statistics":       "Estatísticas",
	"table.word":                "Palavra",
	"table.tf":                  "TF",
	"table.idf":                 "IDF",
	"table.total_tf":            "TF total",
	"verify.resend":             "Enviar novo código",
	"verify.resent":             "Um novo código foi enviado.",
	"collection.name":           "Nome da coleção",
	"collection.create":         "Criar coleção",
	"collection.delete":         "Excluir coleção",
	"collection.document_id":    "ID do documento",
	"collection.add":            "Adicionar documento",
	"collection.remove":         "Remover",
	"collection.doc_count":      "Documentos",
	"document.delete":           "Excluir documento",
}

func init() {
	for key, value := range portugueseMessages {
		if err := message.SetString(tagPortuguese, key, value); err != nil {
			panic("i18n: register " + key + ": " + err.Error())
		}
	}
}
