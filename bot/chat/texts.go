package chat

const (
	CancelCommand = "cancelar"
	CancelButton  = "❌ Cancelar"
	CancelPayload = "cancel"
)

const (
	MsgGenericError    = "❌ Ups! Ocorreu um erro inesperado.\nPor favor, tente novamente mais tarde."
	MsgSessionError    = "❌ Erro de sessão. Por favor, comece novamente a partir do menu."
	MsgCancelled       = "Ação cancelada. A voltar ao menu principal."
	MsgNothingToCancel = "Não há nenhuma ação em curso para cancelar."
	MsgExpired         = "Este botão expirou."
	MsgUseButtons      = "Por favor, use os botões acima ou /cancelar para sair."
	MsgHelp            = "Não entendi. 🤔\nUse o menu abaixo para navegar."
)
