// Command console is the terminal front end of the arrecadações service:
// login, inventory, event panel, sales and the donor ranking, all through the
// REST API.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ranieriiuri/eclesial-arrecadacoes/client"
	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
	"github.com/ranieriiuri/eclesial-arrecadacoes/session"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://localhost:8443"
	}

	api := client.New(baseURL)
	tokens, err := session.NewFileStore(os.Getenv("TOKEN_FILE"))
	if err != nil {
		log.Fatalf("token store: %v", err)
	}

	sess, err := session.New(api, tokens)
	if err != nil {
		log.Fatalf("session: %v", err)
	}
	sess.Initialize(context.Background())

	c := &console{api: api, sess: sess, in: bufio.NewScanner(os.Stdin)}
	c.run()
}

type console struct {
	api  *client.Client
	sess *session.Store
	in   *bufio.Scanner
}

func (c *console) run() {
	fmt.Println("Eclesial Arrecadações — digite 'ajuda' para os comandos.")
	for {
		if c.sess.State() == session.Authenticated {
			if u := c.sess.User(); u != nil {
				fmt.Printf("[%s] > ", u.Nome)
			}
		} else {
			fmt.Print("> ")
		}
		if !c.in.Scan() {
			return
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		if cmd == "sair" || cmd == "exit" {
			return
		}
		// One command runs at a time; that is the console's duplicate
		// submission prevention.
		c.dispatch(cmd, args)
	}
}

func (c *console) dispatch(cmd string, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd {
	case "ajuda", "help":
		c.help()
	case "login":
		c.login(ctx)
	case "registrar":
		c.registrar(ctx)
	case "logout":
		c.sess.Logout()
		fmt.Println("sessão encerrada")
	default:
		// Everything below needs an authenticated session.
		if d := session.RequireAuth(c.sess.HasToken()); !d.Allow {
			fmt.Printf("faça login primeiro (redirecionando para %s)\n", d.RedirectTo)
			return
		}
		switch cmd {
		case "pecas":
			c.listPecas(ctx, args)
		case "nova-peca":
			c.novaPeca(ctx)
		case "editar-peca":
			c.editarPeca(ctx, args)
		case "excluir-peca":
			c.excluirPeca(ctx, args)
		case "eventos":
			c.listEventos(ctx, args)
		case "novo-evento":
			c.novoEvento(ctx)
		case "iniciar":
			c.transicao(ctx, args, c.api.IniciarEvento)
		case "finalizar":
			c.transicao(ctx, args, c.api.FinalizarEvento)
		case "excluir-evento":
			c.excluirEvento(ctx, args)
		case "venda":
			c.venda(ctx, args)
		case "vendas":
			c.listVendas(ctx, args)
		case "ranking":
			c.ranking(ctx, args)
		case "relatorio":
			c.relatorio(ctx, args)
		case "conta":
			c.conta()
		case "perfil":
			c.perfil(ctx)
		case "foto":
			c.foto(ctx, args)
		case "senha":
			c.senha(ctx)
		default:
			fmt.Println("comando desconhecido; 'ajuda' lista os comandos")
		}
	}
}

// reportErr prints a command failure; an expired or revoked token drops the
// session so the next command goes through the login guard again.
func (c *console) reportErr(err error) {
	if client.IsUnauthorized(err) {
		c.sess.Logout()
		fmt.Println("sessão expirada, faça login novamente")
		return
	}
	fmt.Println(err)
}

func (c *console) help() {
	fmt.Println(`comandos:
  login                         autentica com e-mail e senha
  registrar                     cria uma nova conta
  logout                        encerra a sessão
  pecas [categoria]             lista o inventário
  nova-peca                     registra peça + doação
  editar-peca <peca-id>         altera nome, quantidade ou preço
  excluir-peca <peca-id>        remove uma peça
  eventos [status]              lista eventos
  novo-evento                   cria um bazar
  iniciar <evento-id>           inicia um evento
  finalizar <evento-id>         finaliza um evento
  excluir-evento <evento-id>    remove um evento ainda em planejamento
  venda <evento-id> <peca-id> <qtd> [comprador]
  vendas [evento-id]            lista vendas
  ranking <inicio> <fim>        ranking de doadores (datas RFC3339)
  relatorio <evento-id> <arquivo.csv>
  conta                         mostra o perfil
  perfil                        atualiza nome e cargo
  foto <arquivo>                envia nova foto de perfil
  senha                         troca a senha
  sair`)
}

func (c *console) prompt(label string) string {
	fmt.Print(label + ": ")
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *console) login(ctx context.Context) {
	if d := session.RequireAnon(c.sess.HasToken()); !d.Allow {
		fmt.Printf("já autenticado (redirecionando para %s)\n", d.RedirectTo)
		return
	}
	email := c.prompt("e-mail")
	senha := c.prompt("senha")
	if err := c.sess.Login(ctx, email, senha); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("bem-vindo(a), %s\n", c.sess.User().Nome)
}

// registrar creates an account; the returned token opens the session on the
// spot, no separate login.
func (c *console) registrar(ctx context.Context) {
	if d := session.RequireAnon(c.sess.HasToken()); !d.Allow {
		fmt.Printf("já autenticado (redirecionando para %s)\n", d.RedirectTo)
		return
	}

	form := models.RegistroRequest{
		Nome:  c.prompt("nome"),
		Email: c.prompt("e-mail"),
		Senha: c.prompt("senha (mín. 6)"),
		CPF:   c.prompt("cpf"),
		Cargo: c.prompt("cargo (opcional)"),
		Endereco: models.Endereco{
			Cep:        c.prompt("cep"),
			Logradouro: c.prompt("logradouro"),
			Numero:     c.prompt("número"),
			Bairro:     c.prompt("bairro"),
			Cidade:     c.prompt("cidade"),
			Estado:     c.prompt("estado"),
			Pais:       c.prompt("país"),
		},
		Igreja: models.Igreja{
			Nome:   c.prompt("igreja"),
			Cnpj:   c.prompt("cnpj da igreja"),
			Cidade: c.prompt("cidade da igreja"),
			Estado: c.prompt("estado da igreja"),
		},
	}

	if err := c.sess.Register(ctx, form); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("cadastro concluído; bem-vindo(a), %s\n", c.sess.User().Nome)
}

func (c *console) perfil(ctx context.Context) {
	nome := c.prompt("novo nome (vazio mantém)")
	cargo := c.prompt("novo cargo (vazio mantém)")
	if nome == "" && cargo == "" {
		fmt.Println("nada a atualizar")
		return
	}
	user, err := c.api.AtualizarPerfil(ctx, nome, cargo, nil, nil)
	if err != nil {
		c.reportErr(err)
		return
	}
	fmt.Printf("perfil atualizado: %s (%s)\n", user.Nome, user.Cargo)
}

func (c *console) foto(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("uso: foto <arquivo>")
		return
	}
	f, err := os.Open(args[0])
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	user, err := c.api.EnviarFotoPerfil(ctx, args[0], f)
	if err != nil {
		c.reportErr(err)
		return
	}
	fmt.Println("foto atualizada:", user.FotoPerfil)
}

func (c *console) senha(ctx context.Context) {
	atual := c.prompt("senha atual")
	nova := c.prompt("nova senha (mín. 6)")
	if err := c.api.AlterarSenha(ctx, atual, nova); err != nil {
		c.reportErr(err)
		return
	}
	fmt.Println("senha alterada com sucesso")
}

func (c *console) listPecas(ctx context.Context, args []string) {
	categoria := ""
	if len(args) > 0 {
		categoria = args[0]
	}
	pecas, err := c.api.ListPecas(ctx, categoria)
	if err != nil {
		c.reportErr(err)
		return
	}
	for _, p := range pecas {
		disp := " "
		if !p.Disponivel {
			disp = "indisponível"
		}
		fmt.Printf("%s  %-20s %-10s qtd=%-3d %s %s\n",
			p.ID.Hex(), p.Nome, p.Categoria, p.Quantidade, p.PrecoFormatado(), disp)
	}
	fmt.Printf("%d peça(s)\n", len(pecas))
}

func (c *console) novaPeca(ctx context.Context) {
	req := models.NovaPecaComDoacaoRequest{
		Nome:      c.prompt("nome"),
		Cor:       c.prompt("cor (opcional)"),
		Categoria: c.prompt("categoria"),
	}
	if !models.CategoriaValida(req.Categoria) {
		fmt.Println("categoria inválida; opções:", strings.Join(models.Categorias, ", "))
		return
	}
	qtd, err := strconv.Atoi(c.prompt("quantidade"))
	if err != nil || qtd < 1 {
		fmt.Println("quantidade inválida")
		return
	}
	preco, err := strconv.ParseFloat(c.prompt("preço"), 64)
	if err != nil || preco < 0 {
		fmt.Println("preço inválido")
		return
	}
	req.Quantidade = qtd
	req.Preco = preco
	req.NomeDoador = c.prompt("nome do doador")
	req.Contato = c.prompt("contato (opcional)")

	doacao, err := c.api.CriarPecaComDoacao(ctx, req)
	if err != nil {
		fmt.Println("não foi possível registrar:", err)
		return
	}
	fmt.Printf("registrada doação de %s (%d un.) por %s\n",
		doacao.NomePeca, doacao.Quantidade, doacao.Doador.Nome)
}

func (c *console) editarPeca(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("uso: editar-peca <peca-id>")
		return
	}
	pecas, err := c.api.ListPecas(ctx, "")
	if err != nil {
		c.reportErr(err)
		return
	}
	var peca *models.Peca
	for i := range pecas {
		if pecas[i].ID.Hex() == args[0] {
			peca = &pecas[i]
			break
		}
	}
	if peca == nil {
		fmt.Println("peça não encontrada")
		return
	}

	if v := c.prompt("novo nome (vazio mantém)"); v != "" {
		peca.Nome = v
	}
	if v := c.prompt("nova quantidade (vazio mantém)"); v != "" {
		qtd, err := strconv.Atoi(v)
		if err != nil || qtd < 0 {
			fmt.Println("quantidade inválida")
			return
		}
		peca.Quantidade = qtd
	}
	if v := c.prompt("novo preço (vazio mantém)"); v != "" {
		preco, err := strconv.ParseFloat(v, 64)
		if err != nil || preco < 0 {
			fmt.Println("preço inválido")
			return
		}
		peca.Preco = preco
	}

	updated, err := c.api.AtualizarPeca(ctx, *peca)
	if err != nil {
		c.reportErr(err)
		return
	}
	fmt.Printf("peça atualizada: %s qtd=%d %s\n",
		updated.Nome, updated.Quantidade, updated.PrecoFormatado())
}

func (c *console) excluirPeca(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("uso: excluir-peca <peca-id>")
		return
	}
	if err := c.api.ExcluirPeca(ctx, args[0]); err != nil {
		c.reportErr(err)
		return
	}
	fmt.Println("peça excluída")
}

func (c *console) listEventos(ctx context.Context, args []string) {
	status := ""
	if len(args) > 0 {
		status = strings.Join(args, " ")
	}
	eventos, err := c.api.ListEventos(ctx, status)
	if err != nil {
		c.reportErr(err)
		return
	}
	for _, e := range eventos {
		fmt.Printf("%s  %-14s %-13s %s\n", e.ID.Hex(), e.Tipo, e.Status, e.Descricao)
	}
}

func (c *console) novoEvento(ctx context.Context) {
	req := models.NovoEventoRequest{
		Tipo:      models.TipoBazar,
		Descricao: c.prompt("descrição (opcional)"),
	}
	evento, err := c.api.CriarEvento(ctx, req)
	if err != nil {
		fmt.Println("não foi possível criar o evento:", err)
		return
	}
	fmt.Printf("evento %s criado (%s)\n", evento.ID.Hex(), evento.Status)
}

func (c *console) transicao(ctx context.Context, args []string, fn func(context.Context, string) (*models.Evento, error)) {
	if len(args) != 1 {
		fmt.Println("uso: iniciar|finalizar <evento-id>")
		return
	}
	evento, err := fn(ctx, args[0])
	if err != nil {
		c.reportErr(err)
		return
	}
	fmt.Printf("evento agora está '%s'\n", evento.Status)
}

func (c *console) excluirEvento(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("uso: excluir-evento <evento-id>")
		return
	}
	if err := c.api.ExcluirEvento(ctx, args[0]); err != nil {
		c.reportErr(err)
		return
	}
	fmt.Println("evento excluído")
}

func (c *console) venda(ctx context.Context, args []string) {
	if len(args) < 3 {
		fmt.Println("uso: venda <evento-id> <peca-id> <qtd> [comprador]")
		return
	}
	qtd, err := strconv.Atoi(args[2])
	if err != nil {
		fmt.Println("quantidade inválida")
		return
	}
	comprador := ""
	if len(args) > 3 {
		comprador = strings.Join(args[3:], " ")
	}

	evento, err := c.api.GetEvento(ctx, args[0])
	if err != nil {
		c.reportErr(err)
		return
	}
	pecas, err := c.api.ListPecasDisponiveis(ctx)
	if err != nil {
		c.reportErr(err)
		return
	}
	var peca *models.Peca
	for i := range pecas {
		if pecas[i].ID.Hex() == args[1] {
			peca = &pecas[i]
			break
		}
	}
	if peca == nil {
		fmt.Println("peça não encontrada entre as disponíveis")
		return
	}

	venda, err := c.api.RegistrarVenda(ctx, *peca, *evento, qtd, comprador)
	if err != nil {
		fmt.Println("venda não registrada:", err)
		return
	}
	fmt.Printf("venda registrada: %d x %s = R$ %.2f\n",
		venda.Quantidade, venda.PecaNome, venda.ValorArrecadado)
}

func (c *console) listVendas(ctx context.Context, args []string) {
	var vendas []models.Venda
	var err error
	if len(args) > 0 {
		vendas, err = c.api.ListVendasPorEvento(ctx, args[0])
	} else {
		vendas, err = c.api.ListVendas(ctx)
	}
	if err != nil {
		c.reportErr(err)
		return
	}
	var total float64
	for _, v := range vendas {
		total += v.ValorArrecadado
		fmt.Printf("%s  %-20s qtd=%-3d R$ %.2f  %s\n",
			v.DataVenda.Format("2006-01-02 15:04"), v.PecaNome, v.Quantidade, v.ValorArrecadado, v.Comprador)
	}
	fmt.Printf("total arrecadado: R$ %.2f\n", total)
}

func (c *console) ranking(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("uso: ranking <inicio> <fim> (RFC3339)")
		return
	}
	inicio, err := time.Parse(time.RFC3339, args[0])
	if err != nil {
		fmt.Println("data de início inválida")
		return
	}
	fim, err := time.Parse(time.RFC3339, args[1])
	if err != nil {
		fmt.Println("data de fim inválida")
		return
	}
	ranking, err := c.api.RankingDoadores(ctx, inicio, fim)
	if err != nil {
		c.reportErr(err)
		return
	}
	if len(ranking) == 0 {
		fmt.Println("nenhum doador encontrado nesse período")
		return
	}
	for i, d := range ranking {
		fmt.Printf("%2dº  %-30s %d doações\n", i+1, d.Nome, d.TotalDoacoes)
	}
}

func (c *console) relatorio(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("uso: relatorio <evento-id> <arquivo.csv>")
		return
	}
	f, err := os.Create(args[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()
	if err := c.api.BaixarRelatorio(ctx, args[0], f); err != nil {
		fmt.Println("não foi possível baixar o relatório:", err)
		return
	}
	fmt.Println("relatório salvo em", args[1])
}

func (c *console) conta() {
	u := c.sess.User()
	if u == nil {
		fmt.Println("perfil indisponível")
		return
	}
	fmt.Printf("%s <%s>\ncargo: %s\nigreja: %s (%s/%s)\n",
		u.Nome, u.Email, u.Cargo, u.Igreja.Nome, u.Igreja.Cidade, u.Igreja.Estado)
}
